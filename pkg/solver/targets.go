package solver

import (
	"github.com/matzehuels/workcell/pkg/workcell"
)

const coordPlaces = 3

// Targets are the motion points derived from a placed component set, rounded
// to millimeters.
type Targets struct {
	Robot workcell.Vec3 // robot base reference
	Pick  workcell.Vec3 // above the object resting on the conveyor
	Place workcell.Vec3 // above the pallet, offset toward the robot
	Spawn workcell.Vec3 // center of the resting object
}

// DeriveTargets computes pick, place and spawn points from a set that has been
// through [Place]. Both grasp targets sit one object height plus the air gap
// above their surface. Pick XY is the conveyor's work point; place XY is the
// pallet center moved toward the robot by half the object footprint.
func DeriveTargets(set *ComponentSet, cfg Config) Targets {
	obj := set.Object
	inset := objectInset(obj)
	h := obj.Dimensions.Z()

	robot := set.Pedestal.Position.XY()
	pick := workPoint(set.Conveyor, inset)
	place := workPoint(set.Pallet, inset)

	return Targets{
		Robot: workcell.V3(robot.X, robot.Y, set.Pedestal.Top()+cfg.RobotMountOffset).Rounded(coordPlaces),
		Pick:  workcell.V3(pick.X, pick.Y, set.Conveyor.Top()+h+cfg.AirGap).Rounded(coordPlaces),
		Place: workcell.V3(place.X, place.Y, set.Pallet.Top()+h+cfg.AirGap).Rounded(coordPlaces),
		Spawn: workcell.V3(obj.Position.X(), obj.Position.Y(), obj.Position.Z()+h/2).Rounded(coordPlaces),
	}
}
