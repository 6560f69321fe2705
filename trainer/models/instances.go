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

	"github.com/sjwhitworth/golearn/base"
)

const (
	// ClassAttributeName is the name of the class attribute of every dataset.
	ClassAttributeName = "label"

	// PositiveLabel is the class whose F1 score is reported.
	PositiveLabel = "1"
)

// FeatureName returns the name of the i-th feature attribute.
func FeatureName(i int) string {
	return fmt.Sprintf("f%d", i)
}

// NewInstances returns empty instances with numFeatures float attributes
// followed by a categorical class attribute holding labels, in order.
func NewInstances(numFeatures int, labels []string) (*base.DenseInstances, []base.AttributeSpec, base.AttributeSpec, error) {
	inst := base.NewDenseInstances()
	featureSpecs := make([]base.AttributeSpec, numFeatures)
	for i := 0; i < numFeatures; i++ {
		featureSpecs[i] = inst.AddAttribute(base.NewFloatAttribute(FeatureName(i)))
	}

	class := base.NewCategoricalAttribute()
	class.SetName(ClassAttributeName)
	for _, label := range labels {
		class.GetSysValFromString(label)
	}

	classSpec := inst.AddAttribute(class)
	if err := inst.AddClassAttribute(class); err != nil {
		return nil, nil, base.AttributeSpec{}, err
	}

	return inst, featureSpecs, classSpec, nil
}

// NewRow returns a single unlabeled instance carrying features.
func NewRow(features []float64, labels []string) (*base.DenseInstances, error) {
	inst, featureSpecs, _, err := NewInstances(len(features), labels)
	if err != nil {
		return nil, err
	}

	if err := inst.Extend(1); err != nil {
		return nil, err
	}

	for i, f := range features {
		inst.Set(featureSpecs[i], 0, base.PackFloatToBytes(f))
	}

	return inst, nil
}

// featureAttributes returns the non-class float attributes of inst.
func featureAttributes(inst base.FixedDataGrid) []base.Attribute {
	attrs := make([]base.Attribute, 0)
	for _, a := range base.NonClassAttributes(inst) {
		if _, ok := a.(*base.FloatAttribute); ok {
			attrs = append(attrs, a)
		}
	}

	return attrs
}
