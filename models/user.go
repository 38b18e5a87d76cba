package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID                  primitive.ObjectID   `bson:"_id,omitempty" json:"_id,omitempty"`
	Name                string               `bson:"name" json:"name"`
	Email               string               `bson:"email" json:"email"`
	Phone               string               `bson:"phone,omitempty" json:"phone,omitempty"`
	Password            string               `bson:"password" json:"-"`
	Role                string               `bson:"role" json:"role"`
	Favorites           []primitive.ObjectID `bson:"favorites" json:"favorites"`
	ResetPasswordToken  string               `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordExpiry time.Time            `bson:"resetPasswordExpiry,omitempty" json:"-"`
	OTP                 string               `bson:"otp,omitempty" json:"-"`
	OTPExpiry           time.Time            `bson:"otpExpiry,omitempty" json:"-"`
	CreatedAt           time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time            `bson:"updatedAt" json:"updatedAt"`
}

type Admin struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Avatar    string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Password  string             `bson:"password" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
