// Package solver turns a requirement record into a workcell layout.
//
// A solve runs five stages in a fixed order:
//
//  1. [CheckRequirement] rejects records that cannot be laid out.
//  2. [Extract] classifies the record into one component per kind,
//     synthesizing defaults for anything missing.
//  3. [Place] puts the pedestal at the origin and searches outward for the
//     conveyor (+X) and then the pallet (+Y).
//  4. [DeriveTargets] computes pick, place and spawn points.
//  5. [Assemble] and [Validate] package the layout and stamp its status.
//
// Everything is pure and deterministic: the same record and [Config] always
// produce byte-identical JSON. Only precondition violations are returned as
// errors. A layout that misses the reach band or fails an acceptance check is
// still returned, with the problem recorded in its quality and status fields.
package solver

import (
	"github.com/matzehuels/workcell/pkg/workcell"
)

// Solve lays out the workcell described by req.
func Solve(req workcell.Requirement, cfg Config) (workcell.Result, error) {
	if err := cfg.Validate(); err != nil {
		return workcell.Result{}, err
	}
	env, err := CheckRequirement(req, cfg)
	if err != nil {
		return workcell.Result{}, err
	}

	set := Extract(req, cfg)
	placements := Place(set, env, cfg)
	targets := DeriveTargets(set, cfg)

	res := Assemble(set, placements, targets, env)
	Validate(res, cfg).Apply(&res)
	return res, nil
}
