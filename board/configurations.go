// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package board

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

// Variant names a board backend implementation.
type Variant string

const (
	VariantMemory  Variant = "memory"
	VariantLevelDb Variant = "ldb"
	VariantSqlite  Variant = "sqlite"
	VariantBbolt   Variant = "bbolt"
)

// Parameters describe the board to be opened.
type Parameters struct {
	Variant   Variant `yaml:"variant"`
	Directory string  `yaml:"directory"`
}

// Factory opens a board for the given parameters.
type Factory func(params Parameters) (Board, error)

// ErrUnsupportedVariant is reported when no factory is registered for a variant.
var ErrUnsupportedVariant = errors.New("unsupported board variant")

var (
	factories      = map[Variant]Factory{}
	factoriesMutex sync.Mutex
)

// RegisterBoardFactory registers a factory for the given variant. Registering
// the same variant twice panics.
func RegisterBoardFactory(variant Variant, factory Factory) {
	factoriesMutex.Lock()
	defer factoriesMutex.Unlock()
	if _, found := factories[variant]; found {
		panic(fmt.Sprintf("board factory for variant %q already registered", variant))
	}
	factories[variant] = factory
}

// GetAllVariants lists the registered variants in sorted order.
func GetAllVariants() []Variant {
	factoriesMutex.Lock()
	defer factoriesMutex.Unlock()
	res := make([]Variant, 0, len(factories))
	for variant := range factories {
		res = append(res, variant)
	}
	slices.Sort(res)
	return res
}

// NewBoard opens a board using the factory registered for params.Variant.
func NewBoard(params Parameters) (Board, error) {
	factoriesMutex.Lock()
	factory, found := factories[params.Variant]
	factoriesMutex.Unlock()
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVariant, params.Variant)
	}
	return factory(params)
}

// ReadParameters loads board parameters from a YAML file. A missing variant
// defaults to the in-memory board.
func ReadParameters(path string) (Parameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Parameters{}, fmt.Errorf("failed to read board parameters: %w", err)
	}
	var params Parameters
	if err := yaml.Unmarshal(data, &params); err != nil {
		return Parameters{}, fmt.Errorf("failed to parse board parameters in %s: %w", path, err)
	}
	if params.Variant == "" {
		params.Variant = VariantMemory
	}
	return params, nil
}
