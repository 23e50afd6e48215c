package component

// Clock is the world time singleton. Now and DT are in seconds.
type Clock struct {
	Now  float64
	DT   float64
	Tick uint64
}

var ClockComponent = NewComponent[Clock]()
