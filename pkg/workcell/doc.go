// Package workcell defines the wire types for workcell layout: the
// requirement record that describes what has to be placed, and the layout
// result that says where everything went.
//
// # Architecture
//
// The package sits at the serialization boundary between the upstream
// requirement-gathering stage, the solver, and the downstream scene builder:
//
//   - [Requirement]: input record (robot, component inventory, task object)
//   - [Component]: canonical, solver-internal form of one workcell element
//   - [Result]: output contract handed to the scene builder unchanged
//
// # Kinds
//
// Every canonical component has exactly one [Kind]:
//
//	workcell.KindPedestal  // "pedestal" - robot anchor, always at the origin
//	workcell.KindConveyor  // "conveyor" - input source
//	workcell.KindPallet    // "pallet"   - output sink
//	workcell.KindObject    // "object"   - the manipulated item
//
// # Requirement Records
//
// Records are JSON or YAML. Unknown keys are ignored so a full upstream record
// can be passed as-is:
//
//	{
//	  "robot_selection": {"model": "ur5", "reach_m": 0.85},
//	  "workcell_components": [
//	    {"name": "belt_1", "component_type": "conveyor", "dimensions": [2.0, 0.64, 0.82]}
//	  ],
//	  "task_specification": {"dimensions": [0.3, 0.3, 0.3], "weight_kg": 2.5}
//	}
//
// # Layout Results
//
// Results serialize with a fixed field order and no maps, so two results built
// from the same input marshal to identical bytes. Use [MarshalResult] and
// [UnmarshalResult], or the file helpers [WriteResultFile] and [ReadResultFile].
package workcell
