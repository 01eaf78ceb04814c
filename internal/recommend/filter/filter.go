// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

// Package filter compiles CEL expressions that restrict the candidate set.
//
// Expressions see one candidate at a time through these variables:
//
//	id       int
//	name     string
//	genres   list(string)
//	type     string
//	episodes int
//	rating   double
//	members  int
//
// Examples:
//
//	"Action" in genres && episodes <= 26
//	type == "Movie" && rating >= 8.0
//	members > 100000
package filter

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/cel-go/cel"

	"github.com/tomtom215/animerec/internal/cache"
)

// ErrInvalidExpression is returned for expressions that fail to compile or
// do not evaluate to a boolean.
var ErrInvalidExpression = errors.New("invalid filter expression")

// Variable names exposed to expressions.
const (
	VarID       = "id"
	VarName     = "name"
	VarGenres   = "genres"
	VarType     = "type"
	VarEpisodes = "episodes"
	VarRating   = "rating"
	VarMembers  = "members"
)

var (
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

func env() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable(VarID, cel.IntType),
			cel.Variable(VarName, cel.StringType),
			cel.Variable(VarGenres, cel.ListType(cel.StringType)),
			cel.Variable(VarType, cel.StringType),
			cel.Variable(VarEpisodes, cel.IntType),
			cel.Variable(VarRating, cel.DoubleType),
			cel.Variable(VarMembers, cel.IntType),
		)
	})
	return celEnv, celEnvErr
}

// Attributes are the per-candidate values bound to expression variables.
type Attributes struct {
	ID       int
	Name     string
	Genres   []string
	Type     string
	Episodes int
	Rating   float64
	Members  int
}

func (a *Attributes) activation() map[string]interface{} {
	genres := a.Genres
	if genres == nil {
		genres = []string{}
	}
	return map[string]interface{}{
		VarID:       int64(a.ID),
		VarName:     a.Name,
		VarGenres:   genres,
		VarType:     a.Type,
		VarEpisodes: int64(a.Episodes),
		VarRating:   a.Rating,
		VarMembers:  int64(a.Members),
	}
}

// Program is a compiled filter expression. It is safe for concurrent use.
type Program struct {
	expr string
	prg  cel.Program
}

// Compile parses and type-checks expr.
func Compile(expr string) (*Program, error) {
	e, err := env()
	if err != nil {
		return nil, fmt.Errorf("create cel environment: %w", err)
	}

	ast, iss := e.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, iss.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("%w: expression must return bool, got %s", ErrInvalidExpression, ast.OutputType())
	}

	prg, err := e.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}
	return &Program{expr: expr, prg: prg}, nil
}

// String returns the source expression.
func (p *Program) String() string {
	return p.expr
}

// Match reports whether the candidate satisfies the expression.
func (p *Program) Match(attrs *Attributes) (bool, error) {
	out, _, err := p.prg.Eval(attrs.activation())
	if err != nil {
		return false, fmt.Errorf("evaluate %q: %w", p.expr, err)
	}
	matched, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w: expression must return bool, got %T", ErrInvalidExpression, out.Value())
	}
	return matched, nil
}

// programTTL bounds how long an unused compiled program stays cached.
const programTTL = time.Hour

// Cache memoizes compiled programs by expression text, evicting the least
// recently used program when full.
type Cache struct {
	programs *cache.LRU[*Program]
}

// NewCache creates a cache holding at most max programs.
func NewCache(max int) *Cache {
	if max < 1 {
		max = 256
	}
	return &Cache{programs: cache.NewLRU[*Program](max, programTTL)}
}

// Compile returns the cached program for expr, compiling it on first use.
// Compilation failures are not cached.
func (c *Cache) Compile(expr string) (*Program, error) {
	if p, ok := c.programs.Get(expr); ok {
		return p, nil
	}

	p, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	c.programs.Add(expr, p)
	return p, nil
}

// Len returns the number of cached programs.
func (c *Cache) Len() int {
	return c.programs.Len()
}
