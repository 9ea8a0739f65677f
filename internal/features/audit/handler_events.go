package audit

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/Dario0076/GestionPedidos/internal/eventengine"
	"github.com/Dario0076/GestionPedidos/internal/eventengine/event"
	"github.com/google/uuid"
)

// subscriberName is the name of this event handler.
const subscriberName event.SubscriberName = "handler_event.audit"

type servicer interface {
	recordEvent(ctx context.Context, orderID uuid.UUID, eventType, detail string) error
	getOrderTrail(ctx context.Context, orderID uuid.UUID) ([]*OrderEvent, error)
}

type HandlerEventsConfig struct {
	DoneCh        <-chan struct{}
	InternalSrvWG *sync.WaitGroup
	EventEngine   eventengine.SubscribeRegisterPublisher
	Service       servicer
	AddressChSize uint16
}

type handlerEvents struct {
	*HandlerEventsConfig
	addressCh chan any
}

func NewHandlerEvents(cfg *HandlerEventsConfig) *handlerEvents {
	if cfg.AddressChSize == 0 {
		cfg.AddressChSize = 10
	}

	if cfg.DoneCh == nil || cfg.InternalSrvWG == nil || cfg.EventEngine == nil || cfg.Service == nil {
		log.Fatalf(
			"either 'DoneCh', 'EventEngine', 'InternalSrvWG' or 'Service' is nil in '%s'",
			subscriberName,
		)
	}

	he := &handlerEvents{
		HandlerEventsConfig: cfg,
		addressCh:           make(chan any, cfg.AddressChSize),
	}

	he.InternalSrvWG.Add(1)
	go he.listen()

	return he
}

func (h *handlerEvents) listen() {
	defer h.InternalSrvWG.Done()

	h.addSubscriptions()

	log.Printf("%s is listening...\n", subscriberName)

	// a for select statement is not used here because the event engine will
	// close the addressCh
	for newEvent := range h.addressCh {
		switch ne := newEvent.(type) {
		case *event.OrderCreatedEvent:
			h.record(
				ne.OrderID,
				string(event.OrderCreatedEventName),
				fmt.Sprintf("order placed by user %s, total %s", ne.UserID, ne.Total),
			)

		case *event.OrderStatusUpdatedEvent:
			h.record(
				ne.OrderID,
				string(event.OrderStatusUpdatedEventName),
				fmt.Sprintf("status changed from %s to %s", ne.OldStatus, ne.NewStatus),
			)

		case *event.OrderCancelledEvent:
			h.record(
				ne.OrderID,
				string(event.OrderCancelledEventName),
				fmt.Sprintf("order cancelled, stock restored for user %s", ne.UserID),
			)

		default:
			log.Printf(
				"received unknown event type: %T\n",
				ne,
			)
		}
	}

	log.Printf("shutting down %s\n", subscriberName)
}

func (h *handlerEvents) record(orderID uuid.UUID, eventType, detail string) {
	err := h.Service.recordEvent(
		context.Background(),
		orderID,
		eventType,
		detail,
	)
	if err != nil {
		log.Printf(
			"failed to record %s for order %s: %v\n",
			eventType,
			orderID,
			err,
		)
	}
}

// addSubscriptions iterates over subscribeToEventNames and subscribes to
// each event with addressCh.
func (h *handlerEvents) addSubscriptions() {
	subscribeToEventNames := [3]event.EventName{
		event.OrderCreatedEventName,
		event.OrderStatusUpdatedEventName,
		event.OrderCancelledEventName,
	}

	var err error
	for _, v := range subscribeToEventNames {
		err = h.EventEngine.Subscribe(
			v,
			&event.Subscriber{
				Name:      subscriberName,
				AddressCh: h.addressCh,
			},
		)
		if err != nil {
			log.Fatalf(
				"error in Subscriber: '%s' \nerror subscribing to events: %v\n",
				subscriberName,
				err,
			)
		}
	}
}
