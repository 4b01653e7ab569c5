/*
	Copyright 2023 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Package testutil provides types and methods facilitating testing visual
// application across datasets.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	visualmapping "github.com/ilhamster/visualmap/visual_mapping"
)

// Dataset is implemented by datasets whose items carry visual bags.
type Dataset interface {
	Count() int
	ItemVisual(idx int) visualmapping.VisualBag
}

// PrettyPrintVisuals renders the specified visual attributes of every item
// in the provided Dataset, one item per line.  Unset attributes are omitted.
func PrettyPrintVisuals(d Dataset, keys ...string) string {
	var sb strings.Builder
	for idx := 0; idx < d.Count(); idx++ {
		bag := d.ItemVisual(idx)
		parts := []string{}
		for _, key := range keys {
			if v := bag.Visual(key); v != nil {
				parts = append(parts, key+": "+v.PrettyPrint())
			}
		}
		fmt.Fprintf(&sb, "%d: { %s }\n", idx, strings.Join(parts, ", "))
	}
	return sb.String()
}

// VisualComparator facilitates testing of visual application, ensuring that
// a 'got' Dataset-under-test carries the same visuals as a 'want' Dataset.
type VisualComparator struct {
	keys      []string
	got, want Dataset
}

// NewVisualComparator returns a new VisualComparator comparing the specified
// visual attributes.
func NewVisualComparator(keys ...string) *VisualComparator {
	return &VisualComparator{
		keys: keys,
	}
}

// WithTestDataset specifies the receiver's Dataset-under-test.
func (vc *VisualComparator) WithTestDataset(got Dataset) *VisualComparator {
	vc.got = got
	return vc
}

// WithWantDataset specifies the Dataset whose visuals the receiver's
// Dataset-under-test should match.
func (vc *VisualComparator) WithWantDataset(want Dataset) *VisualComparator {
	vc.want = want
	return vc
}

// Compare the receiver's 'got' and 'want' Datasets, returning a difference
// message (empty if no difference) and a boolean indicating whether the two
// are different (true) or not (false).
func (vc *VisualComparator) Compare(t *testing.T) (string, bool) {
	t.Helper()
	if vc.got == nil || vc.want == nil {
		t.Fatalf("both a test and a want dataset are required")
	}
	if vc.got.Count() != vc.want.Count() {
		return fmt.Sprintf("Got %d items, wanted %d", vc.got.Count(), vc.want.Count()), true
	}
	if diff := cmp.Diff(
		PrettyPrintVisuals(vc.want, vc.keys...),
		PrettyPrintVisuals(vc.got, vc.keys...)); diff != "" {
		return fmt.Sprintf("Got visuals diff (-want +got):\n%s", diff), true
	}
	return "", false
}

// CompareVisuals compares the specified visual attributes of the provided
// got and want Datasets.  If they differ, raises an error on the provided
// testing.T object.  If the two have different item counts, returns an
// error.
func CompareVisuals(t *testing.T, got, want Dataset, keys ...string) error {
	t.Helper()
	if got.Count() != want.Count() {
		return fmt.Errorf("got %d items, wanted %d", got.Count(), want.Count())
	}
	if msg, failed := NewVisualComparator(keys...).
		WithTestDataset(got).
		WithWantDataset(want).
		Compare(t); failed {
		t.Error(msg)
	}
	return nil
}
