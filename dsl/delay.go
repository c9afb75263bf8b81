package dsl

import (
	"time"

	"github.com/simforge/simforge/sim"
)

// StubServiceDelaySettingsBuilder finishes a service-wide delay
// declaration started with StubServiceBuilder.AndDelay.
type StubServiceDelaySettingsBuilder struct {
	delay   time.Duration
	service *StubServiceBuilder
}

// ForAll applies the delay to every request to the service, regardless
// of method or path.
func (d *StubServiceDelaySettingsBuilder) ForAll() *StubServiceBuilder {
	d.service.addDelaySetting(&sim.DelaySettings{
		URLPattern: d.service.destinationPattern(),
		Delay:      int(d.delay.Milliseconds()),
	})
	return d.service
}

// ForMethod applies the delay to every request to the service made with
// the given HTTP method.
func (d *StubServiceDelaySettingsBuilder) ForMethod(method string) *StubServiceBuilder {
	d.service.addDelaySetting(&sim.DelaySettings{
		URLPattern: d.service.destinationPattern(),
		HTTPMethod: method,
		Delay:      int(d.delay.Milliseconds()),
	})
	return d.service
}
