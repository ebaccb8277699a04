package main

import (
	"github.com/Faultbox/mannequin/internal/app"
	"github.com/Faultbox/mannequin/internal/body"
	"github.com/Faultbox/mannequin/internal/engine/instance"
)

// Starting values for the new-body form when the configured body is invalid.
const (
	defaultFormHeight = 175
	defaultFormWeight = 70
)

// bodyForm is the state behind the "New mannequin" sliders.
type bodyForm struct {
	Height float32
	Weight float32
	Female bool
}

func newBodyForm(height, weight float32, gender string) bodyForm {
	f := bodyForm{Height: defaultFormHeight, Weight: defaultFormWeight}
	if body.ValidateInput(height, weight) {
		f.Height, f.Weight = height, weight
	}
	if g, err := body.ParseGender(gender); err == nil {
		f.Female = g == body.Female
	}
	return f
}

func (f bodyForm) entry() body.Entry {
	e := body.Entry{Height: f.Height, Weight: f.Weight, Gender: body.Male.String()}
	if f.Female {
		e.Gender = body.Female.String()
	}
	return e
}

// Measurements predicts the full record for the form values.
func (f bodyForm) Measurements() (body.Measurements, error) {
	return f.entry().Measurements()
}

// queueBodies loads a body file and queues as many bodies as the stage has
// room for. It must run on the render goroutine since it reads the registry.
func queueBodies(ctx *app.Context, path string) (queued, skipped int, err error) {
	bodies, err := body.LoadFile(path)
	if err != nil {
		return 0, 0, err
	}
	free := instance.MaxInstances - ctx.Registry.Len()
	for i, m := range bodies {
		if i >= free || !ctx.RequestAdd(m) {
			skipped = len(bodies) - i
			break
		}
		queued++
	}
	return queued, skipped, nil
}
