package doctorRepo

import (
	"context"
	"fmt"
	"time"

	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDoctorRepo implements DoctorRepository using MongoDB.
type MongoDoctorRepo struct {
	coll *mongo.Collection
}

// NewMongoDoctorRepo creates a new instance of DoctorRepository using MongoDB.
func NewMongoDoctorRepo() DoctorRepository {
	return &MongoDoctorRepo{coll: database.Collection("doctors")}
}

func (r *MongoDoctorRepo) Create(doctor *models.Doctor) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, doctor); err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

func (r *MongoDoctorRepo) GetByID(id string) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var doctor models.Doctor
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doctor); err != nil {
		return nil, fmt.Errorf("failed to fetch doctor with id %s: %w", id, err)
	}
	return &doctor, nil
}

func (r *MongoDoctorRepo) GetByEmail(email string) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var doctor models.Doctor
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doctor); err != nil {
		return nil, fmt.Errorf("failed to fetch doctor with email %s: %w", email, err)
	}
	return &doctor, nil
}

func (r *MongoDoctorRepo) GetAll() ([]models.Doctor, error) {
	return r.find(bson.M{})
}

func (r *MongoDoctorRepo) GetAvailable() ([]models.Doctor, error) {
	return r.find(bson.M{"available": true})
}

func (r *MongoDoctorRepo) GetBySpeciality(speciality string) ([]models.Doctor, error) {
	filter := bson.M{
		"available":  true,
		"speciality": bson.M{"$regex": speciality, "$options": "i"},
	}
	return r.find(filter)
}

func (r *MongoDoctorRepo) find(filter bson.M) ([]models.Doctor, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve doctors: %w", err)
	}
	defer cursor.Close(ctx)
	var doctors []models.Doctor
	for cursor.Next(ctx) {
		var d models.Doctor
		if err := cursor.Decode(&d); err != nil {
			return nil, fmt.Errorf("failed to decode doctor: %w", err)
		}
		doctors = append(doctors, d)
	}
	return doctors, nil
}

func (r *MongoDoctorRepo) SetAvailability(id string, available bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"available": available}})
	if err != nil {
		return fmt.Errorf("failed to update availability for doctor %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("doctor %s not found", id)
	}
	return nil
}

func (r *MongoDoctorRepo) Count() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count doctors: %w", err)
	}
	return n, nil
}

// AddBookedSlot marks a (day, time) pair taken on the doctor document.
// $addToSet keeps the per-day time set free of duplicates.
func (r *MongoDoctorRepo) AddBookedSlot(doctorID, dayKey, timeLabel string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	field := "bookedSlots." + dayKey
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": doctorID},
		bson.M{"$addToSet": bson.M{field: timeLabel}},
	)
	if err != nil {
		return fmt.Errorf("failed to add booked slot for doctor %s: %w", doctorID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("doctor %s not found", doctorID)
	}
	return nil
}

// RemoveBookedSlot frees a (day, time) pair on the doctor document.
func (r *MongoDoctorRepo) RemoveBookedSlot(doctorID, dayKey, timeLabel string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	field := "bookedSlots." + dayKey
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": doctorID},
		bson.M{"$pull": bson.M{field: timeLabel}},
	)
	if err != nil {
		return fmt.Errorf("failed to remove booked slot for doctor %s: %w", doctorID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("doctor %s not found", doctorID)
	}
	return nil
}
