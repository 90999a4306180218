package logic

import (
	"errors"
	"time"

	"github.com/Bumblebig/UniSupport/dao"
	"github.com/Bumblebig/UniSupport/models"
)

var ErrInvalidCredentials = errors.New("invalid mail or password")

// UserLogic handles user-related business logic
type UserLogic struct {
	userDAO  *dao.UserDAO
	sessions *SessionManager
}

func NewUserLogic(userDAO *dao.UserDAO, sessions *SessionManager) *UserLogic {
	return &UserLogic{
		userDAO:  userDAO,
		sessions: sessions,
	}
}

// SignUp creates an account plus its profile document and opens a session
func (l *UserLogic) SignUp(name, mail, password string) (*models.User, string, time.Time, error) {
	if name == "" || mail == "" || password == "" {
		return nil, "", time.Time{}, errors.New("all fields are required")
	}
	if len(password) < 6 {
		return nil, "", time.Time{}, errors.New("password must be at least 6 characters")
	}

	user, err := l.userDAO.CreateUser(name, mail, password)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	token, expireAt, err := l.sessions.Issue(user.UID)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	return user, token, expireAt, nil
}

// Login verifies credentials and opens a session
func (l *UserLogic) Login(mail, password string) (*models.User, string, time.Time, error) {
	user, err := l.userDAO.GetUserByMail(mail)
	if err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if !user.CheckPassword(password) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expireAt, err := l.sessions.Issue(user.UID)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	return user, token, expireAt, nil
}

// Logout revokes the session behind a token
func (l *UserLogic) Logout(token string) error {
	return l.sessions.Revoke(token)
}

// GetProfile retrieves the profile document for an owner
func (l *UserLogic) GetProfile(uid string) (*models.Profile, error) {
	return l.userDAO.GetProfileByUID(uid)
}
