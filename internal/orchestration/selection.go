package orchestration

import "github.com/agbru/parsum/internal/reduce"

// GetReducersToRun determines which strategies should be executed based on
// the algo selection. Returns reducers in alphabetically sorted order for
// consistent, reproducible behavior.
//
// Parameters:
//   - algo: The strategy name, or "all" for every registered strategy.
//   - factory: The strategy factory to retrieve implementations from.
//
// Returns:
//   - []reduce.Reducer: A slice of reducers to execute, nil when the name
//     is unknown.
func GetReducersToRun(algo string, factory *reduce.Factory) []reduce.Reducer {
	if algo == "all" {
		return factory.GetAll()
	}
	if r, err := factory.Get(algo); err == nil {
		return []reduce.Reducer{r}
	}
	return nil
}
