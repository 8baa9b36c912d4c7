package model

import "time"

type ReservationReport struct {
	GeneratedAt  time.Time
	Reservations []Reservation
}
