package pg

import (
	"database/sql"
	"errors"

	"github.com/campuslink-dev/campuslink/internal/domain"
	apperrors "github.com/campuslink-dev/campuslink/internal/errors"
)

const invitationColumns = `id, post_id, inviter_id, invitee_id, post_snapshot, inviter_snapshot,
	invitee_snapshot, message, status, created_at, seen_at, responded_at`

func (s *Storage) CreateInvitation(i *domain.Invitation) error {
	postSnap, err := jsonb(i.Post)
	if err != nil {
		return err
	}
	inviterSnap, err := jsonb(i.Inviter)
	if err != nil {
		return err
	}
	inviteeSnap, err := jsonb(i.Invitee)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
	INSERT INTO invitations(`+invitationColumns+`)
	VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		i.Id, i.PostId, i.InviterId, i.InviteeId, postSnap, inviterSnap,
		inviteeSnap, i.Message, i.Status, i.CreatedAt, i.SeenAt, i.RespondedAt)
	if isUniqueViolation(err) {
		return apperrors.Conflict("A pending invitation for this user already exists")
	}
	return err
}

func (s *Storage) GetInvitation(id string) (*domain.Invitation, error) {
	row := s.db.QueryRow(`SELECT `+invitationColumns+` FROM invitations WHERE id = $1`, id)
	invitation, err := scanInvitation(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Invitation not found")
		}
		return nil, err
	}
	return invitation, nil
}

func (s *Storage) GetInvitationsByInvitee(userId string) ([]domain.Invitation, error) {
	return s.queryInvitations(`SELECT `+invitationColumns+` FROM invitations WHERE invitee_id = $1 ORDER BY created_at`, userId)
}

func (s *Storage) GetInvitationsByPost(postId string) ([]domain.Invitation, error) {
	return s.queryInvitations(`SELECT `+invitationColumns+` FROM invitations WHERE post_id = $1 ORDER BY created_at`, postId)
}

func (s *Storage) UpdateInvitation(i *domain.Invitation) error {
	result, err := s.db.Exec(`
	UPDATE invitations SET status = $2, seen_at = $3, responded_at = $4
	WHERE id = $1`,
		i.Id, i.Status, i.SeenAt, i.RespondedAt)
	if err != nil {
		return err
	}
	updated, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if updated == 0 {
		return apperrors.NotFound("Invitation not found")
	}
	return nil
}

func (s *Storage) queryInvitations(query string, args ...any) ([]domain.Invitation, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invitations := []domain.Invitation{}
	for rows.Next() {
		invitation, err := scanInvitation(rows.Scan)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, *invitation)
	}
	return invitations, rows.Err()
}

func scanInvitation(scan func(...any) error) (*domain.Invitation, error) {
	var i domain.Invitation
	var postSnap, inviterSnap, inviteeSnap []byte
	err := scan(&i.Id, &i.PostId, &i.InviterId, &i.InviteeId, &postSnap, &inviterSnap,
		&inviteeSnap, &i.Message, &i.Status, &i.CreatedAt, &i.SeenAt, &i.RespondedAt)
	if err != nil {
		return nil, err
	}
	if err := scanJSON(postSnap, &i.Post); err != nil {
		return nil, err
	}
	if err := scanJSON(inviterSnap, &i.Inviter); err != nil {
		return nil, err
	}
	if err := scanJSON(inviteeSnap, &i.Invitee); err != nil {
		return nil, err
	}
	return &i, nil
}
