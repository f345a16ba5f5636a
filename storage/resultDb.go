///////////////////////////////////////////////////////////////////////////////
// Copyright © 2020 xx network SEZC                                          //
//                                                                           //
// Use of this source code is governed by a license that can be found in the //
// LICENSE file                                                              //
///////////////////////////////////////////////////////////////////////////////

// Handles the database ORM for benchmark results

package storage

import (
	"context"
	"errors"
	"time"

	jww "github.com/spf13/jwalterweatherman"
	"gorm.io/gorm"
)

// Helper for forcing panics in the event of a CDE, otherwise acts as a pass-through
func catchCde(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		jww.FATAL.Panicf("Database call timed out: %+v", err.Error())
	}
	return err
}

// UpsertStageResult inserts the given StageResult into Database if it does not
// exist Or updates the Database StageResult if its value does not match the
// given StageResult
func (d *DatabaseImpl) UpsertStageResult(result *StageResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), DbTimeout*time.Second)
	defer cancel()

	// Build a transaction to prevent race conditions
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Make a copy of the provided StageResult
		newResult := *result

		// Attempt to insert result into the Database,
		// or if it already exists, replace result with the Database value
		query := tx.FirstOrCreate(result,
			&StageResult{RunID: result.RunID, Stage: result.Stage})
		err := query.Error
		if err != nil {
			return err
		}

		// If result is already present in the Database, overwrite it with newResult
		if query.RowsAffected == 0 {
			return tx.Save(newResult).Error
		}

		// Commit
		return nil
	})
	return catchCde(err)
}

// GetStageResults returns every StageResult of the given run from Database
// Or an error if the query fails
func (d *DatabaseImpl) GetStageResults(runID string) ([]StageResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), DbTimeout*time.Second)
	defer cancel()

	var results []StageResult
	err := d.db.WithContext(ctx).Where("run_id = ?", runID).
		Order("stage").Find(&results).Error
	return results, catchCde(err)
}
