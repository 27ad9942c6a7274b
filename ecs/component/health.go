package component

type Health struct {
	Current int
	Max     int
}

var HealthComponent = NewComponent[Health]()
