// Package dsl is a fluent builder for simulation documents consumed by
// an external HTTP matching engine. A typical simulation is built from
// one service builder per base URL:
//
//	s := dsl.Simulation(
//		dsl.Service("https://api.example.com").
//			Get("/v1/users").
//			QueryParam("page", "1").
//			WillReturn(dsl.Success().Body(dsl.JSONBody(users))).
//			Post("/v1/users").
//			Body(dsl.JSONBody(newUser)).
//			WillReturn(dsl.Created("/v1/users/42")),
//	)
//
// The result is pure data; nothing here executes at replay time.
package dsl

import (
	"github.com/simforge/simforge/sim"
)

// Simulation folds the given service builders into one exportable
// document, deduplicating pairs across services.
func Simulation(services ...*StubServiceBuilder) *sim.Simulation {
	set := sim.NewPairSet()
	var delays []sim.DelaySettings
	for _, service := range services {
		for _, pair := range service.RequestResponsePairs() {
			set.Add(pair)
		}
		delays = append(delays, service.DelaySettings()...)
	}
	return sim.New(set.Pairs(), delays)
}
