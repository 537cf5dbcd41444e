package core

import (
	"sync"

	"github.com/spaghettifunk/prisma/engine/containers"
)

// EventContext carries the payload of a fired event. Which fields are
// meaningful depends on the event code.
type EventContext struct {
	// Path of the asset that triggered the event, if any.
	Path string
	// Name of the resource the event refers to, if any.
	Name string
	// Generic numeric payload.
	U32 [4]uint32
	F32 [4]float32
}

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// An asset file on disk was created or modified.
	/* Context usage:
	 * path = context.Path
	 */
	EVENT_CODE_ASSET_CHANGED SystemEventCode = 0x01

	// An asset file on disk was removed.
	/* Context usage:
	 * path = context.Path
	 */
	EVENT_CODE_ASSET_REMOVED SystemEventCode = 0x02

	// A material definition was reloaded by the material system.
	/* Context usage:
	 * name = context.Name
	 * generation = context.U32[0]
	 */
	EVENT_CODE_MATERIAL_RELOADED SystemEventCode = 0x03

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

// This should be more than enough codes...
const MAX_MESSAGE_CODES = 4096

// Capacity of the deferred event queue drained by EventPump.
const maxDeferredEvents = 512

type FnOnEvent func(code SystemEventCode, sender interface{}, listener interface{}, context EventContext) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

type eventCodeEntry struct {
	events []*registeredEvent
}

type deferredEvent struct {
	code    SystemEventCode
	sender  interface{}
	context EventContext
}

type eventSystemState struct {
	registered [MAX_MESSAGE_CODES]eventCodeEntry
	// deferred is the only part of the event system touched from
	// watcher goroutines, so it gets its own lock.
	deferredMu sync.Mutex
	deferred   *containers.RingQueue[deferredEvent]
}

var (
	onceEvents    sync.Once
	eventState    *eventSystemState
	isInitialized bool
)

func EventInitialize() error {
	onceEvents.Do(func() {
		eventState = &eventSystemState{
			deferred: containers.NewRingQueue[deferredEvent](maxDeferredEvents),
		}
		isInitialized = true
	})
	return nil
}

func EventShutdown() error {
	// Free the events arrays. Any objects pointed to should be destroyed on their own.
	for i := 0; i < MAX_MESSAGE_CODES; i++ {
		if len(eventState.registered[i].events) != 0 {
			eventState.registered[i].events = nil
		}
	}
	return nil
}

/**
 * Register to listen for when events are sent with the provided code. Events with duplicate
 * listener/callback combos will not be registered again and will cause this to return FALSE.
 * @param code The event code to listen for.
 * @param listener A pointer to a listener instance. Can be 0/NULL.
 * @param on_event The callback function pointer to be invoked when the event code is fired.
 * @returns TRUE if the event is successfully registered; otherwise false.
 */
func EventRegister(code SystemEventCode, listener interface{}, onEvent FnOnEvent) bool {
	if !isInitialized {
		return false
	}
	registeredCount := len(eventState.registered[code].events)
	for i := 0; i < registeredCount; i++ {
		if eventState.registered[code].events[i].listener == listener {
			LogWarn("event listener already registered for code %d", code)
			return false
		}
	}
	// If at this point, no duplicate was found. Proceed with registration.
	event := &registeredEvent{
		listener: listener,
		callback: onEvent,
	}
	eventState.registered[code].events = append(eventState.registered[code].events, event)
	return true
}

/**
 * Unregister from listening for when events are sent with the provided code. If no matching
 * registration is found, this function returns FALSE.
 * @param code The event code to stop listening for.
 * @param listener A pointer to a listener instance. Can be 0/NULL.
 * @param on_event The callback function pointer to be unregistered.
 * @returns TRUE if the event is successfully unregistered; otherwise false.
 */
func EventUnregister(code SystemEventCode, listener interface{}, onEvent FnOnEvent) bool {
	if !isInitialized {
		return false
	}

	// On nothing is registered for the code, boot out.
	if len(eventState.registered[code].events) == 0 {
		return false
	}

	registeredCount := len(eventState.registered[code].events)
	for i := 0; i < registeredCount; i++ {
		e := eventState.registered[code].events[i]
		if e.listener == listener && e.callback != nil {
			// Found one, remove it
			eventState.registered[code].events = append(eventState.registered[code].events[:i], eventState.registered[code].events[i+1:]...)
			return true
		}
	}
	// Not found.
	return false
}

/**
 * Fires an event to listeners of the given code. If an event handler returns
 * TRUE, the event is considered handled and is not passed on to any more listeners.
 * @param code The event code to fire.
 * @param sender A pointer to the sender. Can be 0/NULL.
 * @param context The event data.
 * @returns TRUE if handled, otherwise FALSE.
 */
func EventFire(code SystemEventCode, sender interface{}, context EventContext) bool {
	if !isInitialized {
		return false
	}
	// If nothing is registered for the code, boot out.
	if len(eventState.registered[code].events) == 0 {
		return false
	}
	registeredCount := len(eventState.registered[code].events)
	for i := 0; i < registeredCount; i++ {
		e := eventState.registered[code].events[i]
		if e.callback(code, sender, e.listener, context) {
			// Message has been handled, do not send to other listeners.
			return true
		}
	}
	// Not found.
	return false
}

/**
 * Queues an event to be fired on the next EventPump call instead of
 * immediately. Used by background watchers so listeners always run
 * on the owning thread.
 * @returns TRUE if the event was queued; FALSE when the queue is full.
 */
func EventFireDeferred(code SystemEventCode, sender interface{}, context EventContext) bool {
	if !isInitialized {
		return false
	}
	eventState.deferredMu.Lock()
	defer eventState.deferredMu.Unlock()
	if err := eventState.deferred.Enqueue(deferredEvent{code: code, sender: sender, context: context}); err != nil {
		LogWarn("deferred event queue full, dropping event code %d", code)
		return false
	}
	return true
}

// EventPump fires all deferred events in FIFO order. Should be called
// once per frame by the owning loop.
func EventPump() {
	if !isInitialized {
		return
	}
	for {
		eventState.deferredMu.Lock()
		e, err := eventState.deferred.Dequeue()
		eventState.deferredMu.Unlock()
		if err != nil {
			return
		}
		EventFire(e.code, e.sender, e.context)
	}
}
