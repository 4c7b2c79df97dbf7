package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"smartbudget/internal/core"
	"smartbudget/internal/events"
	applog "smartbudget/internal/log"
	"smartbudget/internal/storage"
)

// transactionRequest keeps every body field raw so a type mismatch on one
// field surfaces as a field error instead of failing the whole decode.
type transactionRequest struct {
	Type         json.RawMessage `json:"type"`
	Amount       json.RawMessage `json:"amount"`
	Category     json.RawMessage `json:"category"`
	Date         json.RawMessage `json:"date"`
	Description  json.RawMessage `json:"description"`
	SourceVendor json.RawMessage `json:"sourceVendor"`
}

// draft converts the raw fields into a validation draft. Non-string type,
// category and date values pass through as their raw text so the regular
// validators report them; the optional fields are checked here because "not
// a string" is the only rule they have.
func (req transactionRequest) draft() (core.TransactionDraft, []core.FieldError) {
	var errs []core.FieldError

	d := core.TransactionDraft{
		Type:     stringOrRaw(req.Type),
		Amount:   amountLiteral(req.Amount),
		Category: stringOrRaw(req.Category),
		Date:     stringOrRaw(req.Date),
	}
	d.Description = optionalString(req.Description, "description", "Description must be a string", &errs)
	d.SourceVendor = optionalString(req.SourceVendor, "sourceVendor", "Source vendor must be a string", &errs)

	return d, errs
}

// stringOrRaw unquotes a JSON string, maps absent and null to empty, and
// leaves any other value as its raw text for the validators to reject.
func stringOrRaw(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// amountLiteral returns the exact amount literal. A JSON number keeps its
// text (so the precision check sees what the client sent); anything else
// keeps its raw form, which fails the number parse with the right message.
func amountLiteral(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	return string(raw)
}

func optionalString(raw json.RawMessage, field, message string, errs *[]core.FieldError) *string {
	if len(raw) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		*errs = append(*errs, core.FieldError{Field: field, Message: message})
		return nil
	}
	return &s
}

type transactionResponse struct {
	ID           int64   `json:"id"`
	UserID       int64   `json:"userId"`
	Type         string  `json:"type"`
	Amount       string  `json:"amount"`
	Category     string  `json:"category"`
	Date         string  `json:"date"`
	Description  *string `json:"description"`
	SourceVendor *string `json:"sourceVendor"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

func toTransactionResponse(t core.Transaction) transactionResponse {
	return transactionResponse{
		ID:           t.ID,
		UserID:       t.UserID,
		Type:         string(t.Type),
		Amount:       core.FormatCents(t.AmountCents),
		Category:     t.Category,
		Date:         t.Date,
		Description:  t.Description,
		SourceVendor: t.SourceVendor,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

type paginationResponse struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorDetails(w, http.StatusBadRequest, "Validation failed", CodeValidationError,
			map[string]any{"errors": []core.FieldError{
				{Field: "body", Message: "Request body must be valid JSON"},
			}})
		return
	}

	draft, typeErrs := req.draft()
	input, fieldErrs := draft.Validate()
	fieldErrs = append(fieldErrs, typeErrs...)
	if len(fieldErrs) > 0 {
		writeErrorDetails(w, http.StatusBadRequest, "Validation failed", CodeValidationError,
			map[string]any{"errors": fieldErrs})
		return
	}

	ctx := r.Context()
	created, err := s.store.CreateTransaction(ctx, identity.UserID, input)
	if err != nil {
		s.logger.ErrorContext(ctx, "create transaction failed",
			applog.FieldOperation, applog.OpCreate,
			applog.FieldUserID, identity.UserID,
			applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Failed to create transaction", CodeDatabaseError)
		return
	}

	s.logger.InfoContext(ctx, "transaction created",
		applog.FieldTransactionID, created.ID,
		applog.FieldUserID, identity.UserID,
		applog.FieldAmountCents, created.AmountCents,
		applog.FieldCategory, created.Category)

	s.publishEvent(r, events.ActionCreated, created)

	writeSuccess(w, http.StatusCreated, map[string]any{
		"transaction": toTransactionResponse(created),
	})
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	params, fieldErrs := parseListParams(r.URL.Query())
	if len(fieldErrs) > 0 {
		writeErrorDetails(w, http.StatusBadRequest, "Validation failed", CodeValidationError,
			map[string]any{"errors": fieldErrs})
		return
	}

	ctx := r.Context()
	transactions, total, err := s.store.ListTransactions(ctx, identity.UserID, params)
	if err != nil {
		s.logger.ErrorContext(ctx, "list transactions failed",
			applog.FieldOperation, applog.OpList,
			applog.FieldUserID, identity.UserID,
			applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch transactions", CodeDatabaseError)
		return
	}

	responses := make([]transactionResponse, 0, len(transactions))
	for _, t := range transactions {
		responses = append(responses, toTransactionResponse(t))
	}

	totalPages := (total + params.Limit - 1) / params.Limit
	if totalPages < 1 {
		totalPages = 1
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"transactions": responses,
		"pagination": paginationResponse{
			CurrentPage:  params.Page,
			TotalPages:   totalPages,
			TotalItems:   total,
			ItemsPerPage: params.Limit,
		},
	})
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	id, ok := transactionID(w, r)
	if !ok {
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorDetails(w, http.StatusBadRequest, "Validation failed", CodeValidationError,
			map[string]any{"errors": []core.FieldError{
				{Field: "body", Message: "Request body must be valid JSON"},
			}})
		return
	}

	draft, typeErrs := req.draft()
	input, fieldErrs := draft.Validate()
	fieldErrs = append(fieldErrs, typeErrs...)
	if len(fieldErrs) > 0 {
		writeErrorDetails(w, http.StatusBadRequest, "Validation failed", CodeValidationError,
			map[string]any{"errors": fieldErrs})
		return
	}

	ctx := r.Context()
	updated, err := s.store.UpdateTransaction(ctx, identity.UserID, id, input)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Transaction not found", CodeNotFound)
		return
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "update transaction failed",
			applog.FieldOperation, applog.OpUpdate,
			applog.FieldTransactionID, id,
			applog.FieldUserID, identity.UserID,
			applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Failed to update transaction", CodeDatabaseError)
		return
	}

	s.logger.InfoContext(ctx, "transaction updated",
		applog.FieldTransactionID, updated.ID,
		applog.FieldUserID, identity.UserID)

	s.publishEvent(r, events.ActionUpdated, updated)

	writeSuccess(w, http.StatusOK, map[string]any{
		"transaction": toTransactionResponse(updated),
	})
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	id, ok := transactionID(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	err := s.store.DeleteTransaction(ctx, identity.UserID, id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Transaction not found", CodeNotFound)
		return
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "delete transaction failed",
			applog.FieldOperation, applog.OpDelete,
			applog.FieldTransactionID, id,
			applog.FieldUserID, identity.UserID,
			applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Failed to delete transaction", CodeDatabaseError)
		return
	}

	s.logger.InfoContext(ctx, "transaction deleted",
		applog.FieldTransactionID, id,
		applog.FieldUserID, identity.UserID)

	s.publishEvent(r, events.ActionDeleted, core.Transaction{ID: id, UserID: identity.UserID})

	writeSuccess(w, http.StatusOK, map[string]any{
		"message": "Transaction deleted successfully",
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]any{
		"income":  core.IncomeCategories,
		"expense": core.ExpenseCategories,
	})
}

// transactionID parses the {id} path value and writes the 400 envelope on
// failure.
func transactionID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		writeErrorDetails(w, http.StatusBadRequest, "Validation failed", CodeValidationError,
			map[string]any{"errors": []core.FieldError{
				{Field: "id", Message: "Transaction id must be a positive integer"},
			}})
		return 0, false
	}
	return id, true
}

// publishEvent emits a lifecycle event without blocking the response path.
// Failures are logged and swallowed; the write already committed.
func (s *Server) publishEvent(r *http.Request, action string, t core.Transaction) {
	event := events.NewTransactionEvent(action, t.ID, t.UserID, string(t.Type), t.AmountCents)
	if err := s.publisher.Publish(r.Context(), event); err != nil {
		s.logger.WarnContext(r.Context(), "event publish failed",
			applog.FieldOperation, applog.OpPublish,
			applog.FieldEventAction, action,
			applog.FieldTransactionID, t.ID,
			applog.FieldError, err)
	}
}
