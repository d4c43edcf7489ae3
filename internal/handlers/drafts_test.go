package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go.uber.org/mock/gomock"

	"linkloom/internal/model"
	"linkloom/internal/service"
	"linkloom/internal/service/mocks"
)

func TestDraftsHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDrafts := mocks.NewMockDraftService(ctrl)
	h := NewDraftsHandler(mockDrafts)

	tests := []struct {
		name       string
		body       any
		mockSetup  func()
		wantStatus int
	}{
		{
			name: "with input",
			body: CreateDraftRequest{Input: "look https://youtu.be/abc123xyz"},
			mockSetup: func() {
				mockDrafts.EXPECT().Create(gomock.Any(), "look https://youtu.be/abc123xyz").
					Return(service.DraftState{ID: "d1"}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "empty body",
			body: nil,
			mockSetup: func() {
				mockDrafts.EXPECT().Create(gomock.Any(), "").Return(service.DraftState{ID: "d2"}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "malformed body",
			body:       "{",
			mockSetup:  func() {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "service error",
			body: nil,
			mockSetup: func() {
				mockDrafts.EXPECT().Create(gomock.Any(), "").Return(service.DraftState{}, service.ErrClosed)
			},
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			w := serve(http.MethodPost, "/api/drafts", h.Create, "/api/drafts", tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestDraftsHandler_Lifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDrafts := mocks.NewMockDraftService(ctrl)
	h := NewDraftsHandler(mockDrafts)

	input := "https://example.com/a"
	mockDrafts.EXPECT().
		Update(gomock.Any(), "d1", service.DraftUpdate{Input: &input}).
		Return(service.DraftState{ID: "d1", Input: input, Draft: model.Draft{URL: input}}, nil)

	w := serve(http.MethodPut, "/api/drafts/{id}", h.Update, "/api/drafts/d1", map[string]string{"input": input})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d (%s)", w.Code, w.Body.String())
	}
	if st := decode[service.DraftState](t, w); st.URL != input {
		t.Errorf("draft url = %q, want %q", st.URL, input)
	}

	mockDrafts.EXPECT().Get(gomock.Any(), "d1").Return(service.DraftState{ID: "d1", Fetching: true}, nil)
	w = serve(http.MethodGet, "/api/drafts/{id}", h.Get, "/api/drafts/d1", nil)
	if st := decode[service.DraftState](t, w); !st.Fetching {
		t.Error("fetching flag not reported")
	}

	mockDrafts.EXPECT().Analyze(gomock.Any(), "d1").
		Return(service.DraftState{ID: "d1", Draft: model.Draft{Tags: []string{"a"}}}, nil)
	w = serve(http.MethodPost, "/api/drafts/{id}/analyze", h.Analyze, "/api/drafts/d1/analyze", nil)
	if w.Code != http.StatusOK {
		t.Errorf("analyze status = %d", w.Code)
	}

	mockDrafts.EXPECT().Save(gomock.Any(), "d1").Return(model.ContentItem{ID: "item-9"}, nil)
	w = serve(http.MethodPost, "/api/drafts/{id}/save", h.Save, "/api/drafts/d1/save", nil)
	if w.Code != http.StatusCreated {
		t.Errorf("save status = %d, want 201", w.Code)
	}
	if item := decode[model.ContentItem](t, w); item.ID != "item-9" {
		t.Errorf("saved id = %q", item.ID)
	}

	mockDrafts.EXPECT().Discard(gomock.Any(), "d1").Return(nil)
	w = serve(http.MethodDelete, "/api/drafts/{id}", h.Discard, "/api/drafts/d1", nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("discard status = %d, want 204", w.Code)
	}
}

func TestDraftsHandler_ErrorMapping(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDrafts := mocks.NewMockDraftService(ctrl)
	h := NewDraftsHandler(mockDrafts)

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not found", err: service.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "validation", err: service.RequiredError("url"), wantStatus: http.StatusBadRequest},
		{name: "wrapped not found", err: fmt.Errorf("save: %w", service.ErrNotFound), wantStatus: http.StatusNotFound},
		{name: "closed", err: service.ErrClosed, wantStatus: http.StatusServiceUnavailable},
		{name: "other", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDrafts.EXPECT().Save(gomock.Any(), "d1").Return(model.ContentItem{}, tt.err)
			w := serve(http.MethodPost, "/api/drafts/{id}/save", h.Save, "/api/drafts/d1/save", nil)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if resp := decode[ErrorResponse](t, w); resp.Error == "" {
				t.Error("error message is empty")
			}
		})
	}
}
