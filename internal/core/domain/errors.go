package domain

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrForbidden          = errors.New("access forbidden")

	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")

	ErrTokenExpired          = errors.New("token expired")
	ErrTokenSignatureInvalid = errors.New("invalid token signature")
	ErrTokenMalformed        = errors.New("malformed token")

	ErrQuestionExists   = errors.New("question with this title already exists")
	ErrQuestionNotFound = errors.New("question not found")

	ErrQuizNotFound         = errors.New("quiz not found")
	ErrNoQuestionsAvailable = errors.New("no questions available for the given category")

	ErrProviderUnavailable = errors.New("question service unavailable")
)
