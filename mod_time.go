package deskscene

import (
	"time"
)

// Time is the frame clock. Dt is zero on the first frame so startup work
// does not show up as one long step.
type Time struct {
	Time time.Time
	Dt   time.Duration

	ticked bool
}

// Seconds is Dt in seconds, the unit camera movement uses.
func (t *Time) Seconds() float32 {
	return float32(t.Dt.Seconds())
}

type TimeModule struct {
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Time{
		Time: time.Now(),
		Dt:   0,
	})
	app.UseSystem(
		System(timeSystem).
			InStage(Prelude),
	)
}

func timeSystem(timeResource *Time) {
	timeResource.advance(time.Now())
}

func (t *Time) advance(now time.Time) {
	if t.ticked {
		t.Dt = now.Sub(t.Time)
	} else {
		t.Dt = 0
		t.ticked = true
	}
	t.Time = now
}
