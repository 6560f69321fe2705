/*
 *     Copyright 2026 The Modelgate Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */


package models

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/filters"
)

// DefaultChiMergeSignificance is the significance level used to merge
// adjacent feature intervals.
const DefaultChiMergeSignificance = 0.90

// trainCutPoints runs ChiMerge over every float feature of inst and returns
// the lower bound of each resulting interval, keyed by feature name.
func trainCutPoints(inst base.FixedDataGrid, significance float64) (map[string][]float64, error) {
	filt := filters.NewChiMergeFilter(inst, significance)
	for _, a := range base.NonClassFloatAttributes(inst) {
		if err := filt.AddAttribute(a); err != nil {
			return nil, err
		}
	}

	if err := filt.Train(); err != nil {
		return nil, err
	}

	cuts := make(map[string][]float64)
	for _, fa := range filt.GetAttributesAfterFiltering() {
		attr, ok := fa.New.(*base.CategoricalAttribute)
		if !ok || fa.Old == fa.New {
			continue
		}

		values := make([]float64, 0, len(attr.GetValues()))
		for _, s := range attr.GetValues() {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("interval of %s: %w", attr.GetName(), err)
			}
			values = append(values, v)
		}

		sort.Float64s(values)
		uniq := values[:0]
		for i, v := range values {
			if i == 0 || v != values[i-1] {
				uniq = append(uniq, v)
			}
		}
		if len(uniq) > 0 {
			cuts[attr.GetName()] = uniq
		}
	}

	return cuts, nil
}

// discretizer maps float features onto the ChiMerge intervals learned at fit
// time. It is bound to the grid it filters and can be rebuilt for any grid
// with the same feature names, which is how unseen rows are filtered.
type discretizer struct {
	cuts  map[string][]float64
	attrs []base.FilteredAttribute
}

// newDiscretizer returns a filter over grid that discretizes every float
// attribute having cut points.
func newDiscretizer(grid base.FixedDataGrid, cuts map[string][]float64) *discretizer {
	all := grid.AllAttributes()
	attrs := make([]base.FilteredAttribute, len(all))
	for i, a := range all {
		bounds, ok := cuts[a.GetName()]
		if _, isFloat := a.(*base.FloatAttribute); !isFloat || !ok || len(bounds) == 0 {
			attrs[i] = base.FilteredAttribute{Old: a, New: a}
			continue
		}

		bins := new(base.CategoricalAttribute)
		bins.SetName(a.GetName())
		for j := range bounds {
			bins.GetSysValFromString(strconv.Itoa(j))
		}
		attrs[i] = base.FilteredAttribute{Old: a, New: bins}
	}

	return &discretizer{cuts: cuts, attrs: attrs}
}

// discretize wraps grid so the forest sees interval indexes instead of raw
// feature values.
func discretize(grid base.FixedDataGrid, cuts map[string][]float64) base.FixedDataGrid {
	return base.NewLazilyFilteredInstances(grid, newDiscretizer(grid, cuts))
}

// bin returns the index of the interval holding v.
func bin(bounds []float64, v float64) int {
	i := sort.SearchFloat64s(bounds, v) - 1
	if i < 0 {
		return 0
	}

	return i
}

func (d *discretizer) AddAttribute(base.Attribute) error {
	return nil
}

func (d *discretizer) GetAttributesAfterFiltering() []base.FilteredAttribute {
	return d.attrs
}

func (d *discretizer) String() string {
	return fmt.Sprintf("discretizer(%d attributes)", len(d.cuts))
}

func (d *discretizer) Transform(old base.Attribute, _ base.Attribute, field []byte) []byte {
	if _, ok := old.(*base.FloatAttribute); !ok {
		return field
	}

	bounds, ok := d.cuts[old.GetName()]
	if !ok || len(bounds) == 0 {
		return field
	}

	return base.PackU64ToBytes(uint64(bin(bounds, base.UnpackBytesToFloat(field))))
}

func (d *discretizer) Train() error {
	return nil
}
