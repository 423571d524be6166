package repository

import (
	"context"
)

// Doctor is an agricultural specialist listed in the directory.
type Doctor struct {
	Name      string `bson:"doctorName" json:"doctorName"`
	Specialty string `bson:"specialist" json:"specialist"`
	Mobile    string `bson:"mobile" json:"mobile"`
	Email     string `bson:"email,omitempty" json:"email,omitempty"`
	Location  string `bson:"location,omitempty" json:"location,omitempty"`
}

// User is the subset of a user profile the price endpoints need.
type User struct {
	ID     string `bson:"-" json:"id"`
	Region string `bson:"state" json:"state"`
}

// Crop is one crop a user grows, with the region it is grown in.
type Crop struct {
	UserID string `bson:"userid" json:"userId"`
	Name   string `bson:"cropname" json:"cropName"`
	Region string `bson:"cropstate" json:"cropState"`
}

// DoctorReader lists directory doctors.
type DoctorReader interface {
	ListDoctors(ctx context.Context) ([]Doctor, error)
}

// UserReader loads users and the crops attached to them.
type UserReader interface {
	GetUser(ctx context.Context, id string) (User, error)
	ListCropsByUser(ctx context.Context, userID string) ([]Crop, error)
}

// Repository combines every directory read.
type Repository interface {
	DoctorReader
	UserReader
}
