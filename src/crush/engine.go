package crush

import (
	"fmt"

	"github.com/lost-woods/crush/src/rocrand"
)

// AllEngines selects every registered engine.
const AllEngines = "all"

type Engine struct {
	Flag string
	Name string
	Type rocrand.RNGType
}

var Engines = []Engine{
	{Flag: "philox", Name: "philox4x32_10", Type: rocrand.RNGPseudoPhilox4x32_10},
}

// UnknownEngineError is a usage error; it never reaches a library.
type UnknownEngineError struct {
	Name string
}

func (e *UnknownEngineError) Error() string {
	return fmt.Sprintf("unknown random number engine '%s'", e.Name)
}

func (e *UnknownEngineError) ExitCode() int { return ExitUsage }

// SelectEngines resolves the --engine option.
func SelectEngines(name string) ([]Engine, error) {
	if name == AllEngines {
		return Engines, nil
	}
	for _, e := range Engines {
		if e.Flag == name {
			return []Engine{e}, nil
		}
	}
	return nil, &UnknownEngineError{Name: name}
}
