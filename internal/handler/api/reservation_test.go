//go:build unit

package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"libreserve/internal/handler/api"
	"libreserve/internal/usecase/commands"
	"libreserve/internal/usecase/queries"
	"libreserve/tests/common/builder"
	commandsmock "libreserve/tests/mock/commands"
	queriesmock "libreserve/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	handler      *api.ReservationHandler
	userID       uuid.UUID
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	// Stand-in for the auth middleware
	authed := func(c *gin.Context) {
		c.Set("user_id", s.userID)
	}

	s.router.POST("/reservations", authed, s.handler.CreateReservation)
	s.router.GET("/reservations", authed, s.handler.GetUserReservations)
	s.router.GET("/reservations/:id", authed, s.handler.GetReservation)
	s.router.POST("/reservations/:id/cancel", authed, s.handler.CancelReservation)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func (s *ReservationHandlerTestSuite) postJSON(url string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *ReservationHandlerTestSuite) get(url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *ReservationHandlerTestSuite) TestCreateReservation() {
	bookID := uuid.New()
	body := map[string]any{"book_id": bookID.String()}

	s.Run("success: returns 201 with the reservation", func() {
		view := builder.NewReservationBuilder().WithOwner(s.userID).BuildReadModel()
		s.mockCommands.EXPECT().Reserve(gomock.Any(), s.userID, bookID).
			Return(&commands.ReserveResult{Reservation: view}, nil)

		w := s.postJSON("/reservations", body)

		s.Equal(http.StatusCreated, w.Code)
		s.Contains(w.Body.String(), view.ID.String())
		s.NotContains(w.Body.String(), "warning")
	})

	s.Run("success with stale availability: 201 plus warning", func() {
		view := builder.NewReservationBuilder().WithOwner(s.userID).BuildReadModel()
		s.mockCommands.EXPECT().Reserve(gomock.Any(), s.userID, bookID).
			Return(&commands.ReserveResult{
				Reservation:     view,
				AvailabilityErr: commands.ErrDatabaseOperationFailed,
			}, nil)

		w := s.postJSON("/reservations", body)

		s.Equal(http.StatusCreated, w.Code)
		s.Contains(w.Body.String(), "availability count could not be updated")
	})

	s.Run("book not found: 404", func() {
		s.mockCommands.EXPECT().Reserve(gomock.Any(), s.userID, bookID).
			Return(nil, commands.ErrBookNotFound)

		w := s.postJSON("/reservations", body)

		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("no copies: 409", func() {
		s.mockCommands.EXPECT().Reserve(gomock.Any(), s.userID, bookID).
			Return(nil, commands.ErrBookUnavailable)

		w := s.postJSON("/reservations", body)

		s.Equal(http.StatusConflict, w.Code)
	})

	s.Run("limit exceeded: 422 with policy maximum", func() {
		s.mockCommands.EXPECT().Reserve(gomock.Any(), s.userID, bookID).
			Return(nil, &commands.LimitExceededError{Max: 5})

		w := s.postJSON("/reservations", body)

		s.Equal(http.StatusUnprocessableEntity, w.Code)
		s.Contains(w.Body.String(), "limit of 5")
	})

	s.Run("malformed body: 400 without reaching the use case", func() {
		req := httptest.NewRequest(http.MethodPost, "/reservations", bytes.NewReader([]byte("{")))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)

		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *ReservationHandlerTestSuite) TestGetReservation() {
	s.Run("success: returns 200", func() {
		view := builder.NewReservationBuilder().WithOwner(s.userID).BuildReadModel()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, view.ID).
			Return(view, nil)

		w := s.get("/reservations/" + view.ID.String())

		s.Equal(http.StatusOK, w.Code)
		s.Contains(w.Body.String(), view.BookTitle)
	})

	s.Run("another user's reservation: 403", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, id).
			Return(nil, queries.ErrReservationAccess)

		w := s.get("/reservations/" + id.String())

		s.Equal(http.StatusForbidden, w.Code)
	})

	s.Run("unknown id: 404", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, id).
			Return(nil, queries.ErrReservationNotFound)

		w := s.get("/reservations/" + id.String())

		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("malformed id: 400", func() {
		w := s.get("/reservations/not-a-uuid")

		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *ReservationHandlerTestSuite) TestGetUserReservations() {
	s.Run("success: returns the user's list", func() {
		items := []*queries.ReservationListItem{
			builder.NewReservationBuilder().BuildListItem(),
			builder.NewReservationBuilder().BuildListItem(),
		}
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID).
			Return(items, nil)

		w := s.get("/reservations")

		s.Equal(http.StatusOK, w.Code)
		s.Contains(w.Body.String(), items[0].ID.String())
		s.Contains(w.Body.String(), items[1].ID.String())
	})
}

func (s *ReservationHandlerTestSuite) TestCancelReservation() {
	s.Run("success: returns 200 with cancelled status", func() {
		snap := builder.NewReservationBuilder().WithOwner(s.userID).BuildSnapshot()
		snap.Status = "cancelled"
		s.mockCommands.EXPECT().Cancel(gomock.Any(), s.userID, snap.ID).
			Return(snap, nil)

		w := s.postJSON("/reservations/"+snap.ID.String()+"/cancel", nil)

		s.Equal(http.StatusOK, w.Code)
		s.Contains(w.Body.String(), "cancelled")
	})

	s.Run("already terminal: 409", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().Cancel(gomock.Any(), s.userID, id).
			Return(nil, commands.ErrInvalidStateTransition)

		w := s.postJSON("/reservations/"+id.String()+"/cancel", nil)

		s.Equal(http.StatusConflict, w.Code)
	})

	s.Run("not the owner: 403", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().Cancel(gomock.Any(), s.userID, id).
			Return(nil, commands.ErrReservationAccessDenied)

		w := s.postJSON("/reservations/"+id.String()+"/cancel", nil)

		s.Equal(http.StatusForbidden, w.Code)
	})
}
