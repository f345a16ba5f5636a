///////////////////////////////////////////////////////////////////////////////
// Copyright © 2020 xx network SEZC                                          //
//                                                                           //
// Use of this source code is governed by a license that can be found in the //
// LICENSE file                                                              //
///////////////////////////////////////////////////////////////////////////////

// Handles the Map backend for benchmark result storage

package storage

import (
	"sort"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
)

// UpsertStageResult inserts the given StageResult into Map if it does not
// exist Or updates the Map StageResult if its value does not match the given
// StageResult
func (m *MapImpl) UpsertStageResult(result *StageResult) error {
	m.Lock()
	defer m.Unlock()

	stored := &StageResult{}
	if err := copier.Copy(stored, result); err != nil {
		return errors.Errorf("Unable to copy StageResult %s: %+v",
			result.mapKey(), err)
	}

	m.results[result.mapKey()] = stored
	return nil
}

// GetStageResults returns every StageResult of the given run from Map, sorted
// by stage to match the database ordering
func (m *MapImpl) GetStageResults(runID string) ([]StageResult, error) {
	m.Lock()
	defer m.Unlock()

	var results []StageResult
	for _, stored := range m.results {
		if stored.RunID != runID {
			continue
		}
		result := StageResult{}
		if err := copier.Copy(&result, stored); err != nil {
			return nil, errors.Errorf("Unable to copy StageResult %s: %+v",
				stored.mapKey(), err)
		}
		results = append(results, result)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Stage < results[j].Stage
	})
	return results, nil
}
