package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client is a store customer. The backend serves them under /clients/.
type Client struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	DocumentType   string    `json:"document_type,omitempty"`
	DocumentNumber string    `json:"document_number"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Address        string    `json:"address,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}

type Supplier struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	RUC           string    `json:"ruc"`
	ContactPerson string    `json:"contact_person,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
}

type ExpenseCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Expense struct {
	ID           int64           `json:"id"`
	CategoryID   *int64          `json:"category,omitempty"`
	CategoryName string          `json:"category_name,omitempty"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Date         string          `json:"date"`
	Notes        string          `json:"notes,omitempty"`
}

type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	Phone     string `json:"phone,omitempty"`
	IsActive  bool   `json:"is_active"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}
