// Copyright (C) 2026 UC Managed (ops@ucmanaged.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/ucmanaged/teamsvoice/pkg/archive"
	"github.com/ucmanaged/teamsvoice/pkg/teams"
)

// recordValidate checks the marker fields of deserialized records (the
// required Identity, the non-empty usage list) via their struct tags.
var recordValidate = validator.New()

// validationError is one entity type's pre-flight failure. The type it
// names is dropped from the run; it never aborts the other types.
type validationError struct {
	Entity teams.EntityType
	Err    error
}

func (e *validationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Entity, e.Err)
}

func (e *validationError) Unwrap() error { return e.Err }

// restoreSet holds the validated collections of one restore run, keyed by
// the closed entity-type enumeration. Which types are present is explicit:
// a type missing from the set was either absent from the archive or failed
// validation, and reconciliation skips it.
type restoreSet struct {
	dialPlans   []teams.DialPlan
	voiceRoutes []teams.VoiceRoute
	policies    []teams.VoiceRoutingPolicy
	usages      *teams.PstnUsage
	transRules  []teams.TranslationRule
	gateways    []teams.PstnGateway

	present map[teams.EntityType]bool
}

func newRestoreSet() *restoreSet {
	return &restoreSet{present: make(map[teams.EntityType]bool)}
}

// Has reports whether the given type validated successfully.
func (s *restoreSet) Has(et teams.EntityType) bool { return s.present[et] }

// Empty reports whether no type survived validation.
func (s *restoreSet) Empty() bool { return len(s.present) == 0 }

// validateArchive reads and validates all six voice entries. Each type is
// attempted independently; the returned errors carry one entry per failed
// type and the set carries whatever validated. Callers abort only when the
// set comes back empty.
func validateArchive(arc *archive.Archive) (*restoreSet, []error) {
	set := newRestoreSet()
	var errs []error

	fail := func(et teams.EntityType, err error) {
		errs = append(errs, &validationError{Entity: et, Err: err})
	}

	for _, et := range teams.EntityTypes() {
		data, err := arc.ReadEntry(et.EntryName())
		if err != nil {
			fail(et, err)
			continue
		}

		switch et {
		case teams.EntityDialPlans:
			records, err := decodeRecords[teams.DialPlan](data)
			if err != nil {
				fail(et, err)
				continue
			}
			set.dialPlans = records
		case teams.EntityVoiceRoutes:
			records, err := decodeRecords[teams.VoiceRoute](data)
			if err != nil {
				fail(et, err)
				continue
			}
			set.voiceRoutes = records
		case teams.EntityVoiceRoutingPolicies:
			records, err := decodeRecords[teams.VoiceRoutingPolicy](data)
			if err != nil {
				fail(et, err)
				continue
			}
			set.policies = records
		case teams.EntityPstnUsages:
			records, err := decodeRecords[teams.PstnUsage](data)
			if err != nil {
				fail(et, err)
				continue
			}
			set.usages = &records[0]
		case teams.EntityTranslationRules:
			records, err := decodeRecords[teams.TranslationRule](data)
			if err != nil {
				fail(et, err)
				continue
			}
			set.transRules = records
		case teams.EntityPstnGateways:
			records, err := decodeRecords[teams.PstnGateway](data)
			if err != nil {
				fail(et, err)
				continue
			}
			set.gateways = records
		}
		set.present[et] = true
	}

	return set, errs
}

// decodeRecords deserializes one entry's content and checks its first
// record's marker fields. Entries hold a JSON array normally, but a
// one-record collection may serialize as a bare object; both are accepted.
func decodeRecords[T any](data []byte) ([]T, error) {
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		var one T
		if err := json.Unmarshal(data, &one); err != nil {
			return nil, errors.New("entry is not valid JSON for this collection")
		}
		records = []T{one}
	}
	if len(records) == 0 {
		return nil, errors.New("entry contains no records")
	}
	if err := recordValidate.Struct(records[0]); err != nil {
		return nil, fmt.Errorf("first record is incomplete: %w", err)
	}
	return records, nil
}
