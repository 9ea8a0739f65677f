package eventengine

import (
	"fmt"
	"log"
	"sync"
	"testing"

	"github.com/Dario0076/GestionPedidos/internal/eventengine/event"
)

func Test_eventEngine(t *testing.T) {
	log.SetFlags(log.Ltime | log.Lshortfile)

	var err error
	doneCh := make(chan struct{})
	internalSrvWG := sync.WaitGroup{}

	engine := eventEngine{
		EventEngineConfig: &EventEngineConfig{
			DoneCh:        doneCh,
			InternalSrvWG: &internalSrvWG,
		},
		events:        make(map[event.EventName]*subscribers, 20),
		eventEngineCh: make(chan *event.Event, 1),
	}

	internalSrvWG.Add(1)
	go engine.listen()

	eventTest := event.Event{
		Name: "test.event.engine.event.name",
	}
	engine.RegisterEvents(eventTest.Name)

	// register two subscribers for the same event and make sure both see
	// every published payload.
	subscriberAddressCh1 := make(chan any, 8)
	err = engine.Subscribe(
		eventTest.Name,
		&event.Subscriber{
			Name:      "test_subscriber_name.1",
			AddressCh: subscriberAddressCh1,
		},
	)
	if err != nil {
		close(subscriberAddressCh1)
		t.Fatal(err)
	}

	subscriberAddressCh2 := make(chan any, 8)
	err = engine.Subscribe(
		eventTest.Name,
		&event.Subscriber{
			Name:      "test_subscriber_name.2",
			AddressCh: subscriberAddressCh2,
		},
	)
	if err != nil {
		close(subscriberAddressCh2)
		t.Fatal(err)
	}

	var received1, received2 int

	internalSrvWG.Add(1)
	go func() {
		defer internalSrvWG.Done()
		for range subscriberAddressCh1 {
			received1++
		}
	}()

	internalSrvWG.Add(1)
	go func() {
		defer internalSrvWG.Done()
		for range subscriberAddressCh2 {
			received2++
		}
	}()

	const published = 5
	for i := 0; i < published; i++ {
		err = engine.Publish(
			&event.Event{
				Name:    eventTest.Name,
				Payload: fmt.Sprintf("test payload: %d", i+1),
			},
		)
		if err != nil {
			t.Fatal(err)
		}
	}

	close(doneCh)
	internalSrvWG.Wait()

	if received1 != published {
		t.Errorf("subscriber 1 received %d events, want %d", received1, published)
	}

	if received2 != published {
		t.Errorf("subscriber 2 received %d events, want %d", received2, published)
	}
}

func Test_eventEngine_SubscribeUnknownEvent(t *testing.T) {
	doneCh := make(chan struct{})
	internalSrvWG := sync.WaitGroup{}

	engine := NewEventEngine(&EventEngineConfig{
		DoneCh:        doneCh,
		InternalSrvWG: &internalSrvWG,
	})

	addressCh := make(chan any, 1)
	err := engine.Subscribe(
		"never.registered",
		&event.Subscriber{
			Name:      "test_subscriber",
			AddressCh: addressCh,
		},
	)
	if err == nil {
		t.Error("expected an error subscribing to an unregistered event")
	}

	close(doneCh)
	internalSrvWG.Wait()
}

func Test_eventEngine_PublishUnknownEvent(t *testing.T) {
	doneCh := make(chan struct{})
	internalSrvWG := sync.WaitGroup{}

	engine := NewEventEngine(&EventEngineConfig{
		DoneCh:        doneCh,
		InternalSrvWG: &internalSrvWG,
	})

	err := engine.Publish(&event.Event{Name: "never.registered"})
	if err == nil {
		t.Error("expected an error publishing an unregistered event")
	}

	close(doneCh)
	internalSrvWG.Wait()
}
