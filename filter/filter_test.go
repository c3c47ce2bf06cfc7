package filter

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/s0up4200/holocron/swapi"
)

const tatooine = "https://swapi.dev/api/planets/1/"

func testSpecies() []swapi.Entity {
	return []swapi.Entity{
		{"name": "Human", "homeworld": "https://swapi.dev/api/planets/9/", "url": "https://swapi.dev/api/species/1/"},
		{"name": "Droid", "homeworld": nil, "url": "https://swapi.dev/api/species/2/"},
		{"name": "Jawa", "homeworld": tatooine, "url": "https://swapi.dev/api/species/3/",
			"films": []any{"https://swapi.dev/api/films/1/"}},
	}
}

func TestCompileFilter(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `homeworld == planetURL`,
			wantErr:    false,
		},
		{
			name:        "empty expression",
			expression:  "   ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:       "invalid syntax",
			expression: `icontains(name, "unclosed`,
			wantErr:    true,
		},
		{
			name:       "complex expression",
			expression: `istartsWith(name, "j") and hasRef(films, "https://swapi.dev/api/films/1/")`,
			wantErr:    false,
		},
		{
			name:       "not a boolean",
			expression: `upper(name)`,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := CompileFilter(tt.expression)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error but got none")
				}
				var compErr *CompilationError
				if !errors.As(err, &compErr) {
					t.Errorf("expected CompilationError, got %T", err)
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f == nil {
				t.Fatalf("expected filter but got nil")
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	species := testSpecies()
	vars := map[string]any{"planetURL": tatooine}

	tests := []struct {
		expression string
		want       []bool
	}{
		{`homeworld == planetURL`, []bool{false, false, true}},
		{`homeworld != nil`, []bool{true, false, true}},
		{`icontains(name, "O")`, []bool{false, true, false}},
		{`name contains "o"`, []bool{false, true, false}},
		{`iendsWith(name, "A")`, []bool{false, false, true}},
		{`refID(url) == "2"`, []bool{false, true, false}},
		{`Entity.name endsWith "a"`, []bool{false, false, true}},
		{`hasRef(films, "https://swapi.dev/api/films/1/")`, []bool{false, false, true}},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			f, err := CompileFilter(tt.expression)
			if err != nil {
				t.Fatalf("compile: %v", err)
			}

			for i, s := range species {
				got, err := f.Evaluate(s, vars)
				if err != nil {
					t.Fatalf("evaluate %s: %v", s.Name(), err)
				}
				if got != tt.want[i] {
					t.Errorf("%s: got %v, want %v", s.Name(), got, tt.want[i])
				}
			}
		})
	}
}

func TestEvaluateError(t *testing.T) {
	droid := testSpecies()[1]

	tests := []struct {
		name        string
		expression  string
		entity      swapi.Entity
		wantNotBool bool
	}{
		{
			name:        "null field",
			expression:  `homeworld`,
			entity:      droid,
			wantNotBool: true,
		},
		{
			name:        "string field",
			expression:  `mass`,
			entity:      swapi.Entity{"name": "Luke Skywalker", "mass": "77", "url": "https://swapi.dev/api/people/1/"},
			wantNotBool: true,
		},
		{
			name:       "runtime error",
			expression: `Entity.name.first == "x"`,
			entity:     droid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := CompileFilter(tt.expression)
			if err != nil {
				t.Fatalf("compile: %v", err)
			}

			got, err := f.Evaluate(tt.entity, nil)
			if got {
				t.Errorf("expected false on error")
			}

			var evalErr *EvaluationError
			if !errors.As(err, &evalErr) {
				t.Fatalf("expected EvaluationError, got %v", err)
			}
			if evalErr.EntityURL != tt.entity.URL() {
				t.Errorf("EntityURL = %q, want %q", evalErr.EntityURL, tt.entity.URL())
			}
			if tt.wantNotBool && !errors.Is(err, ErrNotBool) {
				t.Errorf("expected ErrNotBool, got %v", err)
			}
		})
	}
}

func TestApplyNonBoolResult(t *testing.T) {
	f, err := CompileFilter(`homeworld`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	kept, err := Apply(context.Background(), f, testSpecies(), nil)
	if !errors.Is(err, ErrNotBool) {
		t.Fatalf("expected ErrNotBool, got %v", err)
	}
	if kept != nil {
		t.Errorf("expected no entities on error, got %v", swapi.Names(kept))
	}
}

func TestApply(t *testing.T) {
	f, err := CompileFilter(`homeworld == planetURL`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	species := testSpecies()
	vars := map[string]any{"planetURL": tatooine}

	first, err := Apply(context.Background(), f, species, vars)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	second, err := Apply(context.Background(), f, species, vars)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if len(first) != 1 || first[0].Name() != "Jawa" {
		t.Fatalf("expected only Jawa, got %v", swapi.Names(first))
	}
	if strings.Join(swapi.Names(first), ",") != strings.Join(swapi.Names(second), ",") {
		t.Errorf("filter is not idempotent: %v vs %v", swapi.Names(first), swapi.Names(second))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Apply(ctx, f, species, vars); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestCompilerCache(t *testing.T) {
	c := NewExprCompiler(WithCache(2))

	exprs := []string{`name == "a"`, `name == "b"`, `name == "c"`}
	for _, e := range exprs {
		if _, err := c.Compile(e); err != nil {
			t.Fatalf("compile %q: %v", e, err)
		}
	}
	if n := c.cache.evictList.Len(); n != 2 {
		t.Errorf("expected cache size 2, got %d", n)
	}
	if _, ok := c.cache.Get(exprs[0]); ok {
		t.Errorf("expected least recently used expression to be evicted")
	}

	f1, _ := c.Compile(exprs[2])
	f2, _ := c.Compile(exprs[2])
	if f1 != f2 {
		t.Errorf("expected cached filter to be reused")
	}

	uncached := NewExprCompiler()
	if _, err := uncached.Compile(exprs[0]); err != nil {
		t.Fatalf("compile: %v", err)
	}
	if uncached.cache != nil {
		t.Errorf("compiler without cache should not allocate one")
	}
}
