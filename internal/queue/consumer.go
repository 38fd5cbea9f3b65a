package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartBookingConsumer connects to RabbitMQ, declares the booking queues
// (durable), and starts consuming messages. Each event is appended to
// logs/booking.log in a single-line, human-friendly format. The function
// runs a reconnect loop with exponential backoff and keeps running;
// processing errors are logged and the offending message is rejected
// without requeue so the server continues operating.
func StartBookingConsumer() error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(brokerURL())
		if err != nil {
			log.Printf("booking-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn); err != nil {
			log.Printf("booking-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
			continue
		}
	}
}

// delivery tags a broker message with the queue it came from so the
// handler knows which event type to decode.
type delivery struct {
	queue string
	msg   amqp.Delivery
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("booking-consumer: set QoS failed: %v", err)
	}

	merged := make(chan delivery)
	for _, name := range []string{RoomBookedQueue, RoomChangedQueue} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", name, err)
		}
		msgs, err := ch.Consume(name, "", false, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("queue consume %s: %w", name, err)
		}
		go func(name string, msgs <-chan amqp.Delivery) {
			for m := range msgs {
				merged <- delivery{queue: name, msg: m}
			}
		}(name, msgs)
	}

	// NotifyClose fires when the connection or channel dies; it unblocks
	// the loop so the caller can reconnect.
	closed := conn.NotifyClose(make(chan *amqp.Error, 1))
	for {
		select {
		case d := <-merged:
			if err := handleMessage(d.queue, d.msg.Body); err != nil {
				log.Printf("booking-consumer: handle message failed: %v", err)
				_ = d.msg.Nack(false, false) // reject, do not requeue to avoid tight loops
				continue
			}
			_ = d.msg.Ack(false)
		case <-closed:
			return errors.New("broker connection closed")
		}
	}
}

func handleMessage(queueName string, body []byte) error {
	var line string
	switch queueName {
	case RoomBookedQueue:
		var ev RoomBookedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal: %w", err)
		}
		line = fmt.Sprintf("[%s] Room booked | booking_id=%d | user_id=%d | room_id=%d\n",
			ev.BookedAt, ev.BookingID, ev.UserID, ev.RoomID)
	case RoomChangedQueue:
		var ev RoomChangedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal: %w", err)
		}
		line = fmt.Sprintf("[%s] Room changed | booking_id=%d | user_id=%d | to_room=%d\n",
			ev.ChangedAt, ev.BookingID, ev.UserID, ev.ToRoomID)
	default:
		return fmt.Errorf("unknown queue %q", queueName)
	}

	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	fpath := filepath.Join("logs", "booking.log")
	f, err := os.OpenFile(fpath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
