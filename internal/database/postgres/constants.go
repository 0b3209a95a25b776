package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
	// PgErrorCodeCheckViolation is raised when quantity would go negative
	PgErrorCodeCheckViolation = "23514"
)

// SQL Queries - Reservations
// The other repositories run the sqlc queries in internal/database/queries.
const (
	reservationColumns = `regear_id::text, guild_id, issuer_id, recipient_id, items, selected_tier, status,
		reserved_at, completed_at, cancelled_at, surfaces`

	SQLInsertReservation = `
		INSERT INTO regear_reservations
			(regear_id, guild_id, issuer_id, recipient_id, items, selected_tier, status, reserved_at, surfaces)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	SQLGetReservation = `SELECT ` + reservationColumns + ` FROM regear_reservations WHERE regear_id = $1`

	SQLGetReservationStatus = `SELECT status FROM regear_reservations WHERE regear_id = $1`

	SQLTransitionReservation = `
		UPDATE regear_reservations
		SET status = $2,
		    completed_at = CASE WHEN $2 = 'COMPLETED' THEN $3 ELSE completed_at END,
		    cancelled_at = CASE WHEN $2 = 'CANCELLED' THEN $3 ELSE cancelled_at END
		WHERE regear_id = $1 AND status = ANY($4::text[])
		RETURNING ` + reservationColumns

	SQLUpdateReservationSurfaces = `UPDATE regear_reservations SET surfaces = $2 WHERE regear_id = $1`
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Inventory Operations
const (
	ErrMsgFailedToQueryInventory     = "failed to query inventory"
	ErrMsgFailedToUpsertInventory    = "failed to upsert inventory"
	ErrMsgFailedToDecrementInventory = "failed to decrement inventory"
)

// Error Messages - Reservation Operations
const (
	ErrMsgFailedToMarshalItems          = "failed to marshal reservation items"
	ErrMsgFailedToUnmarshalItems        = "failed to unmarshal reservation items"
	ErrMsgFailedToMarshalSurfaces       = "failed to marshal reservation surfaces"
	ErrMsgFailedToUnmarshalSurfaces     = "failed to unmarshal reservation surfaces"
	ErrMsgFailedToInsertReservation     = "failed to insert reservation"
	ErrMsgFailedToGetReservation        = "failed to get reservation"
	ErrMsgFailedToTransitionReservation = "failed to transition reservation"
	ErrMsgFailedToUpdateSurfaces        = "failed to update reservation surfaces"
	ErrMsgInvalidRegearID               = "invalid regear id"
)

// Error Messages - Guild Operations
const (
	ErrMsgFailedToGetAuditChannel  = "failed to get audit channel"
	ErrMsgFailedToSetAuditChannel  = "failed to set audit channel"
	ErrMsgFailedToCheckPermission  = "failed to check permission"
	ErrMsgFailedToGrantPermission  = "failed to grant permission"
	ErrMsgFailedToRevokePermission = "failed to revoke permission"
)

// Error Messages - Event Log Operations
const (
	ErrMsgFailedToMarshalEvent  = "failed to marshal event metadata"
	ErrMsgFailedToInsertEvent   = "failed to insert event"
	ErrMsgFailedToQueryEvents   = "failed to query events"
	ErrMsgFailedToScanEvent     = "failed to scan event row"
	ErrMsgFailedToCleanupEvents = "failed to clean up events"
)

// Log Messages
const (
	LogMsgCompletionShortfall = "Regear completion rolled back: insufficient stock"
	LogMsgTransitionConflict  = "Regear transition lost a race or was not allowed"
)
