// Package rfq contiene las reglas de estado de una solicitud de cotización (RFQ).
//
// Una vez que el vendedor actuó sobre la RFQ (incluido el rechazo), cualquier
// edición del comprador la marca como "resubmitted" para que vuelva a la bandeja
// del vendedor en lugar de quedar en un estado de respuesta obsoleto.
package rfq

import (
	"errors"
	"fmt"
)

// Status estado de una RFQ.
type Status string

const (
	StatusInitial              Status = "initial"
	StatusNegotiationRequested Status = "negotiation_requested"
	StatusDOQProvided          Status = "doq_provided"
	StatusResponded            Status = "responded"
	StatusAccepted             Status = "accepted"
	StatusRejected             Status = "rejected"
	StatusResubmitted          Status = "resubmitted"
)

// AllStatuses en orden de ciclo de vida.
var AllStatuses = []Status{
	StatusInitial,
	StatusNegotiationRequested,
	StatusDOQProvided,
	StatusResponded,
	StatusAccepted,
	StatusRejected,
	StatusResubmitted,
}

// sellerResponded son los estados que fuerzan "resubmitted" ante una edición del comprador.
var sellerResponded = map[Status]bool{
	StatusNegotiationRequested: true,
	StatusDOQProvided:          true,
	StatusResponded:            true,
	StatusAccepted:             true,
	StatusRejected:             true,
}

// Valid informa si s es un estado conocido.
func (s Status) Valid() bool {
	for _, st := range AllStatuses {
		if st == s {
			return true
		}
	}
	return false
}

func (s Status) String() string { return string(s) }

// Parse convierte un string en Status validándolo.
func Parse(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("estado de RFQ desconocido: %q", s)
	}
	return st, nil
}

// HasSellerResponse informa si el vendedor ya actuó sobre la RFQ.
func HasSellerResponse(s Status) bool {
	return sellerResponded[s]
}

// NextStatusOnBuyerUpdate calcula el estado tras una edición del comprador.
// initial y resubmitted se mantienen (una segunda edición seguida es idempotente).
func NextStatusOnBuyerUpdate(current Status) Status {
	if sellerResponded[current] {
		return StatusResubmitted
	}
	return current
}

// SellerAction acción del vendedor sobre una RFQ.
type SellerAction string

const (
	ActionRequestNegotiation SellerAction = "request_negotiation"
	ActionProvideDOQ         SellerAction = "provide_doq"
	ActionRespond            SellerAction = "respond"
	ActionAccept             SellerAction = "accept"
	ActionReject             SellerAction = "reject"
)

var sellerActionStatus = map[SellerAction]Status{
	ActionRequestNegotiation: StatusNegotiationRequested,
	ActionProvideDOQ:         StatusDOQProvided,
	ActionRespond:            StatusResponded,
	ActionAccept:             StatusAccepted,
	ActionReject:             StatusRejected,
}

// ErrUnknownAction acción de vendedor no reconocida.
var ErrUnknownAction = errors.New("acción de vendedor desconocida")

// ErrClosed la RFQ ya fue aceptada y no admite más acciones del vendedor.
var ErrClosed = errors.New("la RFQ ya fue aceptada")

// StatusForSellerAction devuelve el estado resultante de una acción del vendedor.
func StatusForSellerAction(a SellerAction) (Status, error) {
	st, ok := sellerActionStatus[a]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, string(a))
	}
	return st, nil
}

// ApplySellerAction valida la acción contra el estado actual y devuelve el nuevo estado.
// Una RFQ aceptada es terminal para el vendedor.
func ApplySellerAction(current Status, a SellerAction) (Status, error) {
	next, err := StatusForSellerAction(a)
	if err != nil {
		return "", err
	}
	if current == StatusAccepted {
		return "", ErrClosed
	}
	return next, nil
}
