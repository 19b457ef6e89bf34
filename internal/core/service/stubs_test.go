package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/bloodlink/donation-system/internal/core/domain"
	"github.com/bloodlink/donation-system/internal/core/ports"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func intPtr(i int) *int              { return &i }
func strPtr(s string) *string        { return &s }
func boolPtr(b bool) *bool           { return &b }
func timePtr(t time.Time) *time.Time { return &t }

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

// --- user repository stub ---

type stubUserRepo struct {
	users map[string]*domain.User // keyed by ID
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUnknownUser
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUnknownEmail
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUnknownUser
}

func (r *stubUserRepo) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	if user.ID == "" {
		for _, u := range r.users {
			if u.Username == user.Username || u.Email == user.Email {
				return nil, domain.ErrDuplicateIdentity
			}
		}
		r.seq++
		user.ID = fmt.Sprintf("u%d", r.seq)
	} else if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUnknownUser
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) DeleteByID(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUnknownUser
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) FindByRole(_ context.Context, role domain.Role) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

// mustAdd seeds a user directly, bypassing Save's duplicate checks.
func (r *stubUserRepo) mustAdd(u *domain.User) *domain.User {
	if u.ID == "" {
		r.seq++
		u.ID = fmt.Sprintf("u%d", r.seq)
	}
	r.users[u.ID] = cloneUser(u)
	return cloneUser(u)
}

// --- donation repository stub ---

type stubDonationRepo struct {
	donations map[string]*domain.Donation
	seq       int
}

func newStubDonationRepo() *stubDonationRepo {
	return &stubDonationRepo{donations: make(map[string]*domain.Donation)}
}

func cloneDonation(d *domain.Donation) *domain.Donation {
	if d == nil {
		return nil
	}
	clone := *d
	return &clone
}

func (r *stubDonationRepo) Insert(_ context.Context, d *domain.Donation) (*domain.Donation, error) {
	r.seq++
	d.ID = fmt.Sprintf("d%d", r.seq)
	r.donations[d.ID] = cloneDonation(d)
	return cloneDonation(d), nil
}

func (r *stubDonationRepo) FindByID(_ context.Context, id string) (*domain.Donation, error) {
	if d, ok := r.donations[id]; ok {
		return cloneDonation(d), nil
	}
	return nil, domain.ErrNotFound
}

func (r *stubDonationRepo) Update(_ context.Context, d *domain.Donation) (*domain.Donation, error) {
	if _, ok := r.donations[d.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	r.donations[d.ID] = cloneDonation(d)
	return cloneDonation(d), nil
}

func (r *stubDonationRepo) DeleteByID(_ context.Context, id string) error {
	if _, ok := r.donations[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.donations, id)
	return nil
}

func (r *stubDonationRepo) FindAll(_ context.Context) ([]*domain.Donation, error) {
	var out []*domain.Donation
	for _, d := range r.donations {
		out = append(out, cloneDonation(d))
	}
	return out, nil
}

func (r *stubDonationRepo) FindAvailable(_ context.Context) ([]*domain.Donation, error) {
	var out []*domain.Donation
	for _, d := range r.donations {
		if d.Available {
			out = append(out, cloneDonation(d))
		}
	}
	return out, nil
}

func (r *stubDonationRepo) FindAvailableByBloodType(_ context.Context, bloodType string) ([]*domain.Donation, error) {
	var out []*domain.Donation
	for _, d := range r.donations {
		if d.Available && d.BloodType == bloodType {
			out = append(out, cloneDonation(d))
		}
	}
	return out, nil
}

func (r *stubDonationRepo) FindByDonorID(_ context.Context, donorID string) ([]*domain.Donation, error) {
	var out []*domain.Donation
	for _, d := range r.donations {
		if d.DonorID == donorID {
			out = append(out, cloneDonation(d))
		}
	}
	return out, nil
}

func (r *stubDonationRepo) FindRecent(_ context.Context, limit int64) ([]*domain.Donation, error) {
	all, _ := r.FindAll(context.Background())
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			if all[j].DonationDate.After(all[i].DonationDate) {
				all[i], all[j] = all[j], all[i]
			}
		}
	}
	if int64(len(all)) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *stubDonationRepo) CountAvailableByBloodType(_ context.Context, bloodType string) (int64, error) {
	var n int64
	for _, d := range r.donations {
		if d.Available && d.BloodType == bloodType {
			n++
		}
	}
	return n, nil
}

// --- request repository stub ---

type stubRequestRepo struct {
	requests map[string]*domain.BloodRequest
	seq      int
}

func newStubRequestRepo() *stubRequestRepo {
	return &stubRequestRepo{requests: make(map[string]*domain.BloodRequest)}
}

func cloneRequest(r *domain.BloodRequest) *domain.BloodRequest {
	if r == nil {
		return nil
	}
	clone := *r
	return &clone
}

func (r *stubRequestRepo) Insert(_ context.Context, req *domain.BloodRequest) (*domain.BloodRequest, error) {
	r.seq++
	req.ID = fmt.Sprintf("r%d", r.seq)
	r.requests[req.ID] = cloneRequest(req)
	return cloneRequest(req), nil
}

func (r *stubRequestRepo) FindByID(_ context.Context, id string) (*domain.BloodRequest, error) {
	if req, ok := r.requests[id]; ok {
		return cloneRequest(req), nil
	}
	return nil, domain.ErrNotFound
}

func (r *stubRequestRepo) Update(_ context.Context, req *domain.BloodRequest) (*domain.BloodRequest, error) {
	if _, ok := r.requests[req.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	r.requests[req.ID] = cloneRequest(req)
	return cloneRequest(req), nil
}

func (r *stubRequestRepo) DeleteByID(_ context.Context, id string) error {
	if _, ok := r.requests[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.requests, id)
	return nil
}

func (r *stubRequestRepo) FindAll(_ context.Context) ([]*domain.BloodRequest, error) {
	var out []*domain.BloodRequest
	for _, req := range r.requests {
		out = append(out, cloneRequest(req))
	}
	return out, nil
}

func (r *stubRequestRepo) FindByBloodType(_ context.Context, bloodType string) ([]*domain.BloodRequest, error) {
	var out []*domain.BloodRequest
	for _, req := range r.requests {
		if req.BloodType == bloodType {
			out = append(out, cloneRequest(req))
		}
	}
	return out, nil
}

func (r *stubRequestRepo) FindByStatus(_ context.Context, status domain.RequestStatus) ([]*domain.BloodRequest, error) {
	var out []*domain.BloodRequest
	for _, req := range r.requests {
		if req.Status == status {
			out = append(out, cloneRequest(req))
		}
	}
	return out, nil
}

func (r *stubRequestRepo) FindByUrgencyAndStatus(_ context.Context, urgency domain.Urgency, status domain.RequestStatus) ([]*domain.BloodRequest, error) {
	var out []*domain.BloodRequest
	for _, req := range r.requests {
		if req.Urgency == urgency && req.Status == status {
			out = append(out, cloneRequest(req))
		}
	}
	return out, nil
}

func (r *stubRequestRepo) FindByRequesterID(_ context.Context, requesterID string) ([]*domain.BloodRequest, error) {
	var out []*domain.BloodRequest
	for _, req := range r.requests {
		if req.RequesterID == requesterID {
			out = append(out, cloneRequest(req))
		}
	}
	return out, nil
}

func (r *stubRequestRepo) FindByHospital(_ context.Context, hospitalName string) ([]*domain.BloodRequest, error) {
	var out []*domain.BloodRequest
	for _, req := range r.requests {
		if req.HospitalName == hospitalName {
			out = append(out, cloneRequest(req))
		}
	}
	return out, nil
}

func (r *stubRequestRepo) FindOverdue(_ context.Context, before time.Time) ([]*domain.BloodRequest, error) {
	var out []*domain.BloodRequest
	for _, req := range r.requests {
		if req.Status == domain.RequestPending && req.NeededByDate != nil && req.NeededByDate.Before(before) {
			out = append(out, cloneRequest(req))
		}
	}
	return out, nil
}

func (r *stubRequestRepo) FindRecent(_ context.Context, limit int64) ([]*domain.BloodRequest, error) {
	all, _ := r.FindAll(context.Background())
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			if all[j].RequestDate.After(all[i].RequestDate) {
				all[i], all[j] = all[j], all[i]
			}
		}
	}
	if int64(len(all)) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *stubRequestRepo) CountByStatus(_ context.Context, status domain.RequestStatus) (int64, error) {
	reqs, _ := r.FindByStatus(context.Background(), status)
	return int64(len(reqs)), nil
}

func (r *stubRequestRepo) CountByUrgencyAndStatus(_ context.Context, urgency domain.Urgency, status domain.RequestStatus) (int64, error) {
	reqs, _ := r.FindByUrgencyAndStatus(context.Background(), urgency, status)
	return int64(len(reqs)), nil
}

// --- appointment repository stub ---

type stubAppointmentRepo struct {
	appointments map[string]*domain.Appointment
	seq          int
}

func newStubAppointmentRepo() *stubAppointmentRepo {
	return &stubAppointmentRepo{appointments: make(map[string]*domain.Appointment)}
}

func cloneAppointment(a *domain.Appointment) *domain.Appointment {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAppointmentRepo) Insert(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	r.seq++
	a.ID = fmt.Sprintf("a%d", r.seq)
	r.appointments[a.ID] = cloneAppointment(a)
	return cloneAppointment(a), nil
}

func (r *stubAppointmentRepo) FindByID(_ context.Context, id string) (*domain.Appointment, error) {
	if a, ok := r.appointments[id]; ok {
		return cloneAppointment(a), nil
	}
	return nil, domain.ErrNotFound
}

func (r *stubAppointmentRepo) Update(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if _, ok := r.appointments[a.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	r.appointments[a.ID] = cloneAppointment(a)
	return cloneAppointment(a), nil
}

func (r *stubAppointmentRepo) FindByUserID(_ context.Context, userID string) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range r.appointments {
		if a.UserID == userID {
			out = append(out, cloneAppointment(a))
		}
	}
	return out, nil
}

func (r *stubAppointmentRepo) FindAll(_ context.Context) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range r.appointments {
		out = append(out, cloneAppointment(a))
	}
	return out, nil
}

func (r *stubAppointmentRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.appointments)), nil
}

func (r *stubAppointmentRepo) CountByStatus(_ context.Context, status domain.AppointmentStatus) (int64, error) {
	var n int64
	for _, a := range r.appointments {
		if a.Status == status {
			n++
		}
	}
	return n, nil
}

// --- outbound mail stubs ---

type stubNotifier struct {
	sent    []ports.Mail
	sendErr error
}

func (n *stubNotifier) Send(_ context.Context, to, subject, body string) error {
	if n.sendErr != nil {
		return n.sendErr
	}
	n.sent = append(n.sent, ports.Mail{To: to, Subject: subject, Body: body})
	return nil
}

type stubMailQueue struct {
	mails []ports.Mail
}

func (q *stubMailQueue) Enqueue(mail ports.Mail) {
	q.mails = append(q.mails, mail)
}
