package stride

import (
	"github.com/go-gl/mathgl/mgl64"
)

const (
	GROUND_FOUND EventType = iota
	GROUND_LOST
	ROTATION_SETTLED
	HEIGHT_SETTLED
	DEBUG_DRAW
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// Ground events, sent when the probe starts or stops hitting the ground
type GroundFoundEvent struct {
	Ground GroundSample
}

func (e GroundFoundEvent) Type() EventType { return GROUND_FOUND }

type GroundLostEvent struct {
	Origin mgl64.Vec3
}

func (e GroundLostEvent) Type() EventType { return GROUND_LOST }

// Settle events, sent when a blend reaches its target
type RotationSettledEvent struct {
	Rotation mgl64.Quat
}

func (e RotationSettledEvent) Type() EventType { return ROTATION_SETTLED }

type HeightSettledEvent struct {
	Position mgl64.Vec3
}

func (e HeightSettledEvent) Type() EventType { return HEIGHT_SETTLED }

// Line is a debug segment
type Line struct {
	From, To mgl64.Vec3
}

// DebugDrawEvent carries presentation-only geometry of the last tick
type DebugDrawEvent struct {
	Points []mgl64.Vec3
	Lines  []Line
}

func (e DebugDrawEvent) Type() EventType { return DEBUG_DRAW }

// EventListener - callback for events
type EventListener func(event Event)

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Ground tracking for Found/Lost detection
	groundTracked bool
	grounded      bool

	rotationState BlendState
	heightState   BlendState
}

func NewEvents() Events {
	return Events{
		listeners:     make(map[EventType][]EventListener),
		buffer:        make([]Event, 0, 16),
		rotationState: Settled,
		heightState:   Settled,
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	if e.listeners == nil {
		e.listeners = make(map[EventType][]EventListener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// wants reports whether anyone listens to the event type
func (e *Events) wants(eventType EventType) bool {
	return len(e.listeners[eventType]) > 0
}

func (e *Events) emit(event Event) {
	if e.wants(event.Type()) {
		e.buffer = append(e.buffer, event)
	}
}

// processGround compares the probe result with the previous tick's to detect
// Found/Lost, and reports whether the state changed. The first probe only
// records the state.
func (e *Events) processGround(origin mgl64.Vec3, ground GroundSample, hit bool) bool {
	changed := e.groundTracked && e.grounded != hit
	if changed {
		if hit {
			e.emit(GroundFoundEvent{Ground: ground})
		} else {
			e.emit(GroundLostEvent{Origin: origin})
		}
	}

	e.groundTracked = true
	e.grounded = hit

	return changed
}

// processStates emits a settle event when a blend goes from Interpolating to Settled
func (e *Events) processStates(pose Pose, rotation, height BlendState) {
	if e.rotationState == Interpolating && rotation == Settled {
		e.emit(RotationSettledEvent{Rotation: pose.Rotation})
	}
	if e.heightState == Interpolating && height == Settled {
		e.emit(HeightSettledEvent{Position: pose.Position})
	}

	e.rotationState = rotation
	e.heightState = height
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
