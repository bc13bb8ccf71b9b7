package repository

import (
	"database/sql"

	"jewel-studio-api/logger"
	"jewel-studio-api/model"
)

// ITokenRepository defines the contract for refresh token database operations.
type ITokenRepository interface {
	Create(token *model.RefreshToken) error
	GetByToken(token string) (*model.RefreshToken, error)
	DeleteByToken(token string) error
}

// TokenRepository implements ITokenRepository.
type TokenRepository struct {
	DB *sql.DB
}

func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{DB: db}
}

// Create inserts a new refresh token record into the database.
func (r *TokenRepository) Create(token *model.RefreshToken) error {
	log := logger.Log.WithField("user_id", token.UserID)
	log.Info("Executing query to create a new refresh token")

	query := `INSERT INTO refresh_tokens (user_id, token) VALUES ($1, $2) RETURNING id, created_at`
	err := r.DB.QueryRow(query, token.UserID, token.Token).Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create refresh token query")
		return err
	}
	return nil
}

// GetByToken retrieves a refresh token record by its presented value.
// Returns sql.ErrNoRows when the token was never issued by this system.
func (r *TokenRepository) GetByToken(tokenValue string) (*model.RefreshToken, error) {
	token := &model.RefreshToken{}
	query := `SELECT id, user_id, token, created_at FROM refresh_tokens WHERE token = $1`
	err := r.DB.QueryRow(query, tokenValue).Scan(&token.ID, &token.UserID, &token.Token, &token.CreatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).Error("Failed to execute get refresh token query")
		}
		return nil, err
	}
	return token, nil
}

// DeleteByToken removes a single refresh token record. Deleting a token that
// is already gone is not an error.
func (r *TokenRepository) DeleteByToken(tokenValue string) error {
	query := `DELETE FROM refresh_tokens WHERE token = $1`
	_, err := r.DB.Exec(query, tokenValue)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute delete refresh token query")
		return err
	}
	return nil
}
