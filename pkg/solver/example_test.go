package solver_test

import (
	"fmt"

	"github.com/matzehuels/workcell/pkg/solver"
	"github.com/matzehuels/workcell/pkg/workcell"
)

func ExampleSolve() {
	req := workcell.Requirement{
		Robot: &workcell.RobotSelection{Model: "ur5", ReachM: 0.85},
		Components: []workcell.ComponentSpec{
			{Name: "infeed", ComponentType: "conveyor", Dimensions: workcell.V3(2.0, 0.64, 0.82)},
			{Name: "euro_pallet", ComponentType: "pallet", Dimensions: workcell.V3(1.2, 0.8, 0.15)},
		},
	}

	res, err := solver.Solve(req, solver.DefaultConfig())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("status:", res.Status)
	fmt.Println("conveyor:", res.Coordinates.ConveyorPos)
	fmt.Println("pallet:", res.Coordinates.PalletPos)
	fmt.Println("pick:", res.MotionTargets.PickTarget)
	fmt.Println("place:", res.MotionTargets.PlaceTarget)
	// Output:
	// status: success
	// conveyor: [1.5 0 0]
	// pallet: [0 0.9 0]
	// pick: [0.65 0 1.13]
	// place: [0 0.75 0.46]
}

func ExampleValidate() {
	res := workcell.Result{
		Components: []workcell.PlacedComponent{
			{Name: "pedestal", Position: workcell.V3(0, 0, 0)},
			{Name: "conveyor", Position: workcell.V3(1.5, 0, 0)},
		},
		MotionTargets: workcell.MotionTargets{
			PickTarget:  workcell.V3(0.65, 0, 1.13),
			PlaceTarget: workcell.V3(0.5, 0.2, 0.46),
		},
	}

	rep := solver.Validate(res, solver.DefaultConfig())
	fmt.Println(rep.Status())
	// Output:
	// pick/place separation 0.250 m is below the 0.800 m minimum
}
