package repositories

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"hempcrete-carbon-service/internal/domain"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLFactorRepository loads an emission factor table from a YAML file.
type YAMLFactorRepository struct {
	Path string
}

func NewYAMLFactorRepository(path string) *YAMLFactorRepository {
	return &YAMLFactorRepository{Path: path}
}

func (r *YAMLFactorRepository) LoadFactors(ctx context.Context) (domain.EmissionFactors, error) {
	if r.Path == "" {
		return domain.EmissionFactors{}, errors.New("yaml factor repository: path is empty")
	}

	data, err := os.ReadFile(r.Path)
	if err != nil {
		return domain.EmissionFactors{}, fmt.Errorf("load factors: read %q: %w", r.Path, err)
	}

	f, err := ParseFactorsYAML(data)
	if err != nil {
		return domain.EmissionFactors{}, fmt.Errorf("load factors %q: %w", r.Path, err)
	}

	return f, nil
}

// ParseFactorsYAML decodes a factor table. Keys left out keep their built-in
// default; unknown keys are rejected.
func ParseFactorsYAML(data []byte) (domain.EmissionFactors, error) {
	f := domain.DefaultEmissionFactors()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.EmissionFactors{}, errors.New("parse factors: document is empty")
		}
		return domain.EmissionFactors{}, fmt.Errorf("parse factors: %w", err)
	}

	if err := f.Validate(); err != nil {
		return domain.EmissionFactors{}, err
	}

	return f, nil
}

// StaticFactorRepository serves a fixed in-memory table.
type StaticFactorRepository struct {
	Factors domain.EmissionFactors
}

func (r StaticFactorRepository) LoadFactors(context.Context) (domain.EmissionFactors, error) {
	if err := r.Factors.Validate(); err != nil {
		return domain.EmissionFactors{}, err
	}
	return r.Factors, nil
}
