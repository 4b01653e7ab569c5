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

// Package seriesdispatcher provides Dispatcher, a type for applying a single
// visual mapping collection to several independent series concurrently.
package seriesdispatcher

import (
	"context"
	"fmt"

	"github.com/ilhamster/visualmap/stream"
	"github.com/ilhamster/visualmap/util"
	visualsolution "github.com/ilhamster/visualmap/visual_solution"
	"golang.org/x/sync/errgroup"
)

// Series is a single named dataset.
type Series struct {
	Name string
	Data visualsolution.Dataset
	// Dim is the dimension along which the series' items are classified.
	// If empty, items are classified by index.
	Dim string
}

// Dispatcher applies a visual mapping collection to multiple series.  Each
// series is processed in its own goroutine, in windows of a configured
// number of items; the Dispatcher checks for cancellation between windows.
type Dispatcher struct {
	states   []string
	coll     visualsolution.Collection
	classify visualsolution.ClassifyFunc
	step     int
	modBy    int
}

// New returns a *Dispatcher applying the specified states' mappings from
// the provided Collection.  classify must support concurrent calls.
func New(states []string, coll visualsolution.Collection, classify visualsolution.ClassifyFunc) *Dispatcher {
	return &Dispatcher{
		states:   states,
		coll:     coll,
		classify: classify,
	}
}

// WithStep specifies the number of items processed between cancellation
// checks.  A non-positive step processes each series in a single window.
func (d *Dispatcher) WithStep(step int) *Dispatcher {
	d.step = step
	return d
}

// WithMod specifies that each series' items be visited in strided order,
// every modBy'th item first.
func (d *Dispatcher) WithMod(modBy int) *Dispatcher {
	d.modBy = modBy
	return d
}

// Apply applies the receiver's mappings to every item of every provided
// series.  Series names must be unique.  Any error, including a context
// cancellation, cancels the processing of all series and is returned.
func (d *Dispatcher) Apply(ctx context.Context, series ...*Series) error {
	names := map[string]struct{}{}
	for _, s := range series {
		if _, ok := names[s.Name]; ok {
			return fmt.Errorf("multiple series named `%s`", s.Name)
		}
		names[s.Name] = struct{}{}
	}
	errg, ctx := errgroup.WithContext(ctx)
	for _, s := range series {
		func(s *Series) {
			errg.Go(func() error {
				return d.applySeries(ctx, s)
			})
		}(s)
	}
	return errg.Wait()
}

func (d *Dispatcher) applySeries(ctx context.Context, s *Series) error {
	log := util.Logger().With("series", s.Name)
	task := stream.NewTask(s.Data.Count(), d.step).WithMod(d.modBy)
	executor := visualsolution.IncrementalApplyVisual(d.states, d.coll, d.classify, s.Dim)
	windows := 0
	for cursor, ok := task.Perform(); ok; cursor, ok = task.Perform() {
		if err := ctx.Err(); err != nil {
			log.Debug("series canceled", "windows", windows)
			return err
		}
		if err := executor.Progress(cursor, s.Data); err != nil {
			return fmt.Errorf("series `%s`: %w", s.Name, err)
		}
		windows++
	}
	log.Debug("series visuals applied", "items", s.Data.Count(), "windows", windows)
	return nil
}
