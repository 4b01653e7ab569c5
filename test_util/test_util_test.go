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

package testutil

import (
	"testing"

	"github.com/ilhamster/visualmap/data"
	"github.com/ilhamster/visualmap/util"
)

func dataset(t *testing.T, visuals ...data.Visuals) *data.List {
	t.Helper()
	l := data.NewList("x")
	for idx, v := range visuals {
		if _, err := l.Append(util.IntegerValue(int64(idx))); err != nil {
			t.Fatalf("Append() yielded unexpected error %s", err)
		}
		for key, val := range v {
			l.ItemVisual(idx).SetVisual(key, val)
		}
	}
	return l
}

func TestVisualComparator(t *testing.T) {
	for _, test := range []struct {
		description string
		keys        []string
		got, want   []data.Visuals
		different   bool
	}{{
		description: "equal visuals",
		keys:        []string{"color"},
		got:         []data.Visuals{{"color": util.StringValue("red")}},
		want:        []data.Visuals{{"color": util.StringValue("red")}},
	}, {
		description: "unselected keys ignored",
		keys:        []string{"color"},
		got:         []data.Visuals{{"color": util.StringValue("red"), "opacity": util.DoubleValue(1)}},
		want:        []data.Visuals{{"color": util.StringValue("red")}},
	}, {
		description: "unequal (strings version)",
		keys:        []string{"color"},
		got:         []data.Visuals{{"color": util.StringValue("red")}},
		want:        []data.Visuals{{"color": util.StringValue("blue")}},
		different:   true,
	}, {
		description: "unequal (numeric version)",
		keys:        []string{"symbolSize"},
		got:         []data.Visuals{{"symbolSize": util.IntegerValue(10)}},
		want:        []data.Visuals{{"symbolSize": util.DoubleValue(10)}},
		different:   true,
	}, {
		description: "missing visual",
		keys:        []string{"color"},
		got:         []data.Visuals{{}},
		want:        []data.Visuals{{"color": util.StringValue("red")}},
		different:   true,
	}, {
		description: "different counts",
		keys:        []string{"color"},
		got:         []data.Visuals{{}, {}},
		want:        []data.Visuals{{}},
		different:   true,
	}} {
		t.Run(test.description, func(t *testing.T) {
			gotMsg, different := NewVisualComparator(test.keys...).
				WithTestDataset(dataset(t, test.got...)).
				WithWantDataset(dataset(t, test.want...)).
				Compare(t)
			if test.different != different {
				t.Errorf("Compare() yielded unexpected return message '%s'", gotMsg)
			}
		})
	}
}

func TestPrettyPrintVisuals(t *testing.T) {
	l := dataset(t, data.Visuals{"color": util.StringValue("red"), "symbol": util.StringValue("pin")}, data.Visuals{})
	want := "0: { symbol: 'pin', color: 'red' }\n1: {  }\n"
	if got := PrettyPrintVisuals(l, "symbol", "color"); got != want {
		t.Errorf("PrettyPrintVisuals() = %q, wanted %q", got, want)
	}
}
