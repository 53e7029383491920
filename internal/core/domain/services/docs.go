// Package services contains domain services of the pricing flow: the input
// parsers recognizing weights, coordinates, and order texts, and the
// conversation flow controller that drives a session through the state
// machine one inbound message at a time.
package services
