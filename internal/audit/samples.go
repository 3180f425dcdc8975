package audit

import (
	"fmt"
	"math/rand/v2"
)

// SampleKind selects a demo report set.
type SampleKind string

const (
	SampleRisky SampleKind = "risky"
	SampleGood  SampleKind = "good"
)

const sampleTechnician = "Alex Smith"

var riskyReports = []string{
	`AHU-1 tripped on freeze stat again. I jumped it out to keep the unit running because the customer was complaining about it being hot. Will come back later to check the valve. Forced the VFD to 60hz to get more air flow.`,
	`Chiller 2 went down on low pressure. Reset the alarm. It came back immediately. I overrode the low pressure switch input in the software to false so it would run. It's making a weird noise but cooling the building. Job done.`,
	`Boiler loop pump VFD failed. I bypassed the VFD and wired the pump across the line. It's running full speed now. The diff pressure sensor is reading high but whatever. Removed the safety interlock wire so it wouldn't trip the breaker.`,
	`VAV 2-10 box controller offline. I couldn't communicate with it so I manually opened the damper 100% and left it. Replaced the fuse in the panel but left the door open because I lost the screw.`,
}

var goodReports = []string{
	`Arrived to investigate AHU-3 high static pressure alarm. Found the fire damper in the supply duct had sprung closed. Verified no fire alarm active. Reset the damper linkage and verified full open position. Commanded fan to 25% and ramped up, observing static pressure trends. Static pressure control loop is now stable at 1.5" WC. Cleared alarms and returned unit to Auto.`,
	`Chiller 1 flow switch alarm. Verified pump status command and feedback match. Checked DP switch across the barrel, found it fluctuating. Bleed air from the sensing lines and verified steady pressure. Trended flow status for 15 minutes, no dropouts. Checked strainer DP, clean. Returned system to normal operation.`,
	`Investigated "hot call" in Room 304. VAV discharge temp was 55F but room temp was 76F. Found reheat valve stuck at 0%. Commanded valve to 100%, actuator did not move. Verified 24VAC at the actuator. Diagnosed failed actuator. Replaced with new Belimo actuator, verified operation through full stroke. Calibrated air flow. Room temp dropping.`,
	`Boiler 2 failed to ignite. Checked flame safeguard controller, code indicating pilot failure. Removed pilot assembly, found carbon buildup on the electrode. Cleaned electrode and verified spark gap. Reassembled and tested ignition sequence 3 times. Burner fired successfully each time. Verified O2 levels in flue gas are within spec.`,
}

// Sampler picks demo submissions. The zero value is not usable; use NewSampler.
type Sampler struct {
	intN func(n int) int
}

// NewSampler returns a Sampler drawing from r, or from the global source when r is nil.
func NewSampler(r *rand.Rand) *Sampler {
	if r == nil {
		return &Sampler{intN: rand.IntN}
	}
	return &Sampler{intN: r.IntN}
}

// Sample returns a random demo submission of the given kind.
func (s *Sampler) Sample(kind SampleKind) (Submission, error) {
	var pool []string
	site := ""
	switch kind {
	case SampleRisky:
		pool, site = riskyReports, "Downtown Office Plaza"
	case SampleGood:
		pool, site = goodReports, "Memorial Hospital - East Wing"
	default:
		return Submission{}, fmt.Errorf("unknown sample kind %q: must be risky or good", kind)
	}
	return Submission{
		ReportText:     pool[s.intN(len(pool))],
		TechnicianName: sampleTechnician,
		JobSiteName:    site,
	}, nil
}
