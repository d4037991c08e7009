package contracts

import "github.com/julienschmidt/httprouter"

// Handler is implemented by every service's HTTP layer so the
// application runner can mount routes without knowing the service.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}
