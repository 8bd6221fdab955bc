package api

import "github.com/JaimeStill/cmyk-lab/internal/conversions"

// Domain holds the domain systems that comprise the API.
type Domain struct {
	Conversions conversions.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	return &Domain{
		Conversions: conversions.New(runtime.Convert, runtime.Logger),
	}
}
