package orchestration

import (
	"fmt"

	"github.com/agbru/bigcalc/internal/engine"
)

// AllEngines selects every registered engine.
const AllEngines = "all"

// GetEnginesToRun resolves an engine selection against the factory. "all"
// returns every registered engine in name order.
func GetEnginesToRun(name string, factory engine.Factory) ([]engine.Engine, error) {
	if name == AllEngines {
		engines := factory.GetAll()
		if len(engines) == 0 {
			return nil, fmt.Errorf("no engines registered")
		}
		return engines, nil
	}
	e, err := factory.Get(name)
	if err != nil {
		return nil, err
	}
	return []engine.Engine{e}, nil
}
