package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/playperu/cookparty/internal/handler/health"
	"github.com/playperu/cookparty/internal/room"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

type stateQuery struct {
	RoomID       string `query:"roomId" required:"true"`
	SinceVersion int64  `query:"sinceVersion"`
}

type eventsQuery struct {
	RoomID string `query:"roomId" required:"true"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Cook Party API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Room API for the Cook Party ingredient game.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Reports the selected store mode and whether the store answers.")
	getHealthz.AddRespStructure(health.Response{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(health.Response{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/rooms/create
	postCreate, _ := r.NewOperationContext(http.MethodPost, "/api/rooms/create")
	postCreate.SetSummary("Create room")
	postCreate.SetDescription("Creates an empty room in LOBBY and returns its 4-character code.")
	postCreate.AddRespStructure(CreateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postCreate.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(postCreate)

	// POST /api/rooms/join
	postJoin, _ := r.NewOperationContext(http.MethodPost, "/api/rooms/join")
	postJoin.SetSummary("Join room")
	postJoin.SetDescription("Adds a player while the room is in LOBBY and has fewer than 5 players. The first player becomes host.")
	postJoin.AddReqStructure(JoinRequest{})
	postJoin.AddRespStructure(JoinResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postJoin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postJoin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postJoin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	postJoin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(postJoin)

	// POST /api/rooms/start
	postStart, _ := r.NewOperationContext(http.MethodPost, "/api/rooms/start")
	postStart.SetSummary("Start countdown")
	postStart.SetDescription("Moves a LOBBY room into COUNTDOWN. A room in any other phase is left as is.")
	postStart.AddReqStructure(RoomRequest{})
	postStart.AddRespStructure(SuccessResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postStart.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postStart.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(postStart)

	// POST /api/rooms/submit
	postSubmit, _ := r.NewOperationContext(http.MethodPost, "/api/rooms/submit")
	postSubmit.SetSummary("Submit ingredient")
	postSubmit.SetDescription("Adds an ingredient during COUNTDOWN, up to 20 per room.")
	postSubmit.AddReqStructure(SubmitRequest{})
	postSubmit.AddRespStructure(SuccessResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postSubmit.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postSubmit.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postSubmit.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	postSubmit.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(postSubmit)

	// POST /api/rooms/cook
	postCook, _ := r.NewOperationContext(http.MethodPost, "/api/rooms/cook")
	postCook.SetSummary("Cook dish")
	postCook.SetDescription("Generates the dish for a COUNTDOWN room and moves it to RESULT. Other phases succeed without a result.")
	postCook.AddReqStructure(CookRequest{})
	postCook.AddRespStructure(CookResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postCook.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postCook.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(postCook)

	// GET /api/rooms/state
	getState, _ := r.NewOperationContext(http.MethodGet, "/api/rooms/state")
	getState.SetSummary("Get room state")
	getState.SetDescription("Returns the room, or 204 when sinceVersion is already current.")
	getState.AddReqStructure(stateQuery{})
	getState.AddRespStructure(room.Room{}, openapi.WithHTTPStatus(http.StatusOK))
	getState.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	getState.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	getState.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getState)

	// GET /api/rooms/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/rooms/events")
	getEvents.SetSummary("Room event stream")
	getEvents.SetDescription("Server-Sent Events announcing each new room version.")
	getEvents.AddReqStructure(eventsQuery{})
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	getEvents.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getEvents)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
