package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/alexanderramin/allot/internal/domain"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	projectsCollection    = "projects"
	resourcesCollection   = "resources"
	assignmentsCollection = "resource_assignments"
)

type projectDoc struct {
	ID         string     `firestore:"id"`
	ShortID    string     `firestore:"short_id"`
	Name       string     `firestore:"name"`
	Status     string     `firestore:"status"`
	ArchivedAt *time.Time `firestore:"archived_at"`
	CreatedAt  time.Time  `firestore:"created_at"`
	UpdatedAt  time.Time  `firestore:"updated_at"`
}

type resourceDoc struct {
	ID        string    `firestore:"id"`
	Name      string    `firestore:"name"`
	Role      string    `firestore:"role"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

// Civil days are stored as "2006-01-02" strings so no timezone is attached.
type assignmentDoc struct {
	ID            string    `firestore:"id"`
	ResourceID    string    `firestore:"resource_id"`
	ProjectID     string    `firestore:"project_id"`
	Title         string    `firestore:"title"`
	StartDate     string    `firestore:"start_date"`
	EndDate       string    `firestore:"end_date"`
	AllocationPct float64   `firestore:"allocation_pct"`
	IsActive      bool      `firestore:"is_active"`
	CreatedAt     time.Time `firestore:"created_at"`
	UpdatedAt     time.Time `firestore:"updated_at"`
}

// FirestoreStore keeps projects, resources and assignments in Firestore
// collections. Firestore has no foreign keys, so deletes cascade by query.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore connects to the given project and database and wires the
// Firestore repositories into a Store.
func NewFirestoreStore(ctx context.Context, projectID, databaseID string) (*Store, error) {
	logger := ctxlog.From(ctx)

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project", projectID),
			goerr.V("database", databaseID),
		)
	}

	// Fail fast on bad credentials; an empty collection is fine.
	_, err = client.Collection(projectsCollection).Limit(1).Documents(ctx).Next()
	if err != nil && err != iterator.Done {
		code := status.Code(err)
		if code == codes.PermissionDenied || code == codes.Unauthenticated {
			_ = client.Close()
			return nil, goerr.Wrap(err, "failed to connect to firestore project",
				goerr.V("code", code.String()),
			)
		}
		logger.Debug("firestore connection probe returned error", "error", err, "code", code.String())
	}

	logger.Info("firestore store initialized", "project", projectID, "database", databaseID)

	fs := &FirestoreStore{client: client}
	return &Store{
		Repos: Repos{
			Projects:    &firestoreProjectRepo{fs},
			Resources:   &firestoreResourceRepo{fs},
			Assignments: &firestoreAssignmentRepo{fs},
		},
		Tx:    fs,
		close: client.Close,
	}, nil
}

// WithinTx runs fn against the plain repositories. Writes are applied one by
// one; a failure part way leaves earlier writes in place.
func (f *FirestoreStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repos) error) error {
	return fn(ctx, Repos{
		Projects:    &firestoreProjectRepo{f},
		Resources:   &firestoreResourceRepo{f},
		Assignments: &firestoreAssignmentRepo{f},
	})
}

func notFoundOr(err error, entity, id string) error {
	if status.Code(err) == codes.NotFound {
		return goerr.Wrap(ErrNotFound, entity, goerr.V("id", id))
	}
	return goerr.Wrap(err, "firestore request failed", goerr.V("entity", entity), goerr.V("id", id))
}

func (f *FirestoreStore) deleteWhere(ctx context.Context, collection, field, value string) error {
	iter := f.client.Collection(collection).Where(field, "==", value).Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return goerr.Wrap(err, "failed to iterate documents", goerr.V("collection", collection))
		}
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return goerr.Wrap(err, "failed to delete document",
				goerr.V("collection", collection),
				goerr.V("id", doc.Ref.ID),
			)
		}
	}
}

// --- projects ---

type firestoreProjectRepo struct{ fs *FirestoreStore }

func (r *firestoreProjectRepo) col() *firestore.CollectionRef {
	return r.fs.client.Collection(projectsCollection)
}

func (r *firestoreProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	doc := projectDoc{
		ID:         p.ID,
		ShortID:    strings.ToUpper(p.ShortID),
		Name:       p.Name,
		Status:     string(p.Status),
		ArchivedAt: p.ArchivedAt,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	if _, err := r.col().Doc(p.ID).Create(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to save project", goerr.V("id", p.ID))
	}
	return nil
}

func (r *firestoreProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, notFoundOr(err, "project", id)
	}
	return decodeProject(snap)
}

func (r *firestoreProjectRepo) GetByShortID(ctx context.Context, shortID string) (*domain.Project, error) {
	iter := r.col().Where("short_id", "==", strings.ToUpper(shortID)).Limit(1).Documents(ctx)
	defer iter.Stop()
	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(ErrNotFound, "project", goerr.V("short_id", shortID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query project", goerr.V("short_id", shortID))
	}
	return decodeProject(snap)
}

func (r *firestoreProjectRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Project, error) {
	iter := r.col().Documents(ctx)
	defer iter.Stop()

	var projects []*domain.Project
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate projects")
		}
		p, err := decodeProject(snap)
		if err != nil {
			return nil, err
		}
		if !includeArchived && p.ArchivedAt != nil {
			continue
		}
		projects = append(projects, p)
	}
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].CreatedAt.Before(projects[j].CreatedAt)
	})
	return projects, nil
}

func (r *firestoreProjectRepo) Archive(ctx context.Context, id string) error {
	now := time.Now().UTC()
	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(domain.ProjectArchived)},
		{Path: "archived_at", Value: now},
		{Path: "updated_at", Value: now},
	})
	if err != nil {
		return notFoundOr(err, "project", id)
	}
	return nil
}

func (r *firestoreProjectRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.col().Doc(id).Delete(ctx, firestore.Exists); err != nil {
		return notFoundOr(err, "project", id)
	}
	return r.fs.deleteWhere(ctx, assignmentsCollection, "project_id", id)
}

func decodeProject(snap *firestore.DocumentSnapshot) (*domain.Project, error) {
	var doc projectDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode project", goerr.V("id", snap.Ref.ID))
	}
	return &domain.Project{
		ID:         doc.ID,
		ShortID:    doc.ShortID,
		Name:       doc.Name,
		Status:     domain.ProjectStatus(doc.Status),
		ArchivedAt: doc.ArchivedAt,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}, nil
}

// --- resources ---

type firestoreResourceRepo struct{ fs *FirestoreStore }

func (r *firestoreResourceRepo) col() *firestore.CollectionRef {
	return r.fs.client.Collection(resourcesCollection)
}

func (r *firestoreResourceRepo) Create(ctx context.Context, res *domain.Resource) error {
	doc := resourceDoc{
		ID:        res.ID,
		Name:      res.Name,
		Role:      res.Role,
		CreatedAt: res.CreatedAt,
		UpdatedAt: res.UpdatedAt,
	}
	if _, err := r.col().Doc(res.ID).Create(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to save resource", goerr.V("id", res.ID))
	}
	return nil
}

func (r *firestoreResourceRepo) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, notFoundOr(err, "resource", id)
	}
	return decodeResource(snap)
}

func (r *firestoreResourceRepo) List(ctx context.Context) ([]*domain.Resource, error) {
	iter := r.col().Documents(ctx)
	defer iter.Stop()

	var resources []*domain.Resource
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate resources")
		}
		res, err := decodeResource(snap)
		if err != nil {
			return nil, err
		}
		resources = append(resources, res)
	}
	sort.SliceStable(resources, func(i, j int) bool {
		a, b := strings.ToLower(resources[i].Name), strings.ToLower(resources[j].Name)
		if a != b {
			return a < b
		}
		return resources[i].ID < resources[j].ID
	})
	return resources, nil
}

func (r *firestoreResourceRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.col().Doc(id).Delete(ctx, firestore.Exists); err != nil {
		return notFoundOr(err, "resource", id)
	}
	return r.fs.deleteWhere(ctx, assignmentsCollection, "resource_id", id)
}

func decodeResource(snap *firestore.DocumentSnapshot) (*domain.Resource, error) {
	var doc resourceDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode resource", goerr.V("id", snap.Ref.ID))
	}
	return &domain.Resource{
		ID:        doc.ID,
		Name:      doc.Name,
		Role:      doc.Role,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

// --- assignments ---

type firestoreAssignmentRepo struct{ fs *FirestoreStore }

func (r *firestoreAssignmentRepo) col() *firestore.CollectionRef {
	return r.fs.client.Collection(assignmentsCollection)
}

func encodeAssignment(a *domain.ResourceAssignment) assignmentDoc {
	return assignmentDoc{
		ID:            a.ID,
		ResourceID:    a.ResourceID,
		ProjectID:     a.ProjectID,
		Title:         a.Title,
		StartDate:     a.StartDate.Format(dateLayout),
		EndDate:       a.EndDate.Format(dateLayout),
		AllocationPct: a.AllocationPercentage,
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func (r *firestoreAssignmentRepo) Create(ctx context.Context, a *domain.ResourceAssignment) error {
	if _, err := r.col().Doc(a.ID).Create(ctx, encodeAssignment(a)); err != nil {
		return goerr.Wrap(err, "failed to save assignment", goerr.V("id", a.ID))
	}
	return nil
}

func (r *firestoreAssignmentRepo) GetByID(ctx context.Context, id string) (*domain.ResourceAssignment, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, notFoundOr(err, "assignment", id)
	}
	return decodeAssignment(snap)
}

func (r *firestoreAssignmentRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.ResourceAssignment, error) {
	return r.listWhere(ctx, "project_id", projectID)
}

func (r *firestoreAssignmentRepo) ListByResource(ctx context.Context, resourceID string) ([]*domain.ResourceAssignment, error) {
	return r.listWhere(ctx, "resource_id", resourceID)
}

func (r *firestoreAssignmentRepo) Update(ctx context.Context, a *domain.ResourceAssignment) error {
	if _, err := r.col().Doc(a.ID).Get(ctx); err != nil {
		return notFoundOr(err, "assignment", a.ID)
	}
	if _, err := r.col().Doc(a.ID).Set(ctx, encodeAssignment(a)); err != nil {
		return goerr.Wrap(err, "failed to update assignment", goerr.V("id", a.ID))
	}
	return nil
}

func (r *firestoreAssignmentRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.col().Doc(id).Delete(ctx, firestore.Exists); err != nil {
		return notFoundOr(err, "assignment", id)
	}
	return nil
}

// listWhere sorts in memory so no composite index is needed.
func (r *firestoreAssignmentRepo) listWhere(ctx context.Context, field, value string) ([]*domain.ResourceAssignment, error) {
	iter := r.col().Where(field, "==", value).Documents(ctx)
	defer iter.Stop()

	var assignments []*domain.ResourceAssignment
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate assignments", goerr.V(field, value))
		}
		a, err := decodeAssignment(snap)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	sort.SliceStable(assignments, func(i, j int) bool {
		if !assignments[i].StartDate.Equal(assignments[j].StartDate) {
			return assignments[i].StartDate.Before(assignments[j].StartDate)
		}
		return assignments[i].ID < assignments[j].ID
	})
	return assignments, nil
}

func decodeAssignment(snap *firestore.DocumentSnapshot) (*domain.ResourceAssignment, error) {
	var doc assignmentDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode assignment", goerr.V("id", snap.Ref.ID))
	}
	start, err := domain.ParseDay(doc.StartDate)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid start_date", goerr.V("id", doc.ID))
	}
	end, err := domain.ParseDay(doc.EndDate)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid end_date", goerr.V("id", doc.ID))
	}
	return &domain.ResourceAssignment{
		ID:                   doc.ID,
		ResourceID:           doc.ResourceID,
		ProjectID:            doc.ProjectID,
		Title:                doc.Title,
		StartDate:            start,
		EndDate:              end,
		AllocationPercentage: doc.AllocationPct,
		IsActive:             doc.IsActive,
		CreatedAt:            doc.CreatedAt,
		UpdatedAt:            doc.UpdatedAt,
	}, nil
}
