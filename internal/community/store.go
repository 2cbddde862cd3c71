package community

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/ailo-learn/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateGroup(g models.StudyGroup) error {
	_, err := s.db.Exec(
		`INSERT INTO study_groups (group_id, name, description, max_members, created_by)
		 VALUES ($1, $2, $3, $4, $5)`,
		g.GroupID, g.Name, g.Description, g.MaxMembers, g.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create group: %w", err)
	}
	return nil
}

// ListGroups returns all groups with member counts, marking the ones
// the caller belongs to.
func (s *Store) ListGroups(userID string) ([]models.GroupSummary, error) {
	rows, err := s.db.Query(
		`SELECT g.group_id, g.name, g.description, g.max_members,
		        (SELECT COUNT(*) FROM group_members m WHERE m.group_id = g.group_id),
		        EXISTS(SELECT 1 FROM group_members m WHERE m.group_id = g.group_id AND m.user_id = $1)
		 FROM study_groups g
		 ORDER BY g.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	groups := []models.GroupSummary{}
	for rows.Next() {
		var g models.GroupSummary
		if err := rows.Scan(&g.GroupID, &g.Name, &g.Description, &g.MaxMembers,
			&g.MemberCount, &g.IsMember); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// GetGroupCapacity returns the group's member limit and current count.
func (s *Store) GetGroupCapacity(groupID string) (maxMembers, memberCount int, err error) {
	err = s.db.QueryRow(
		`SELECT g.max_members,
		        (SELECT COUNT(*) FROM group_members m WHERE m.group_id = g.group_id)
		 FROM study_groups g WHERE g.group_id = $1`,
		groupID,
	).Scan(&maxMembers, &memberCount)
	return
}

func (s *Store) AddMember(groupID, userID, role string) error {
	_, err := s.db.Exec(
		`INSERT INTO group_members (group_id, user_id, role)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (group_id, user_id) DO NOTHING`,
		groupID, userID, role,
	)
	return err
}

func (s *Store) IsMember(groupID, userID string) (bool, error) {
	var member bool
	err := s.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM group_members WHERE group_id = $1 AND user_id = $2)`,
		groupID, userID,
	).Scan(&member)
	return member, err
}

func (s *Store) AddMessage(groupID, userID, message string) (*models.GroupMessage, error) {
	var m models.GroupMessage
	var id int64
	err := s.db.QueryRow(
		`INSERT INTO group_messages (group_id, user_id, message)
		 VALUES ($1, $2, $3)
		 RETURNING id, group_id, user_id, message, created_at`,
		groupID, userID, message,
	).Scan(&id, &m.GroupID, &m.UserID, &m.Message, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("add message: %w", err)
	}
	m.MessageID = strconv.FormatInt(id, 10)
	return &m, nil
}

// ListMessages returns the group's recent messages, oldest first.
func (s *Store) ListMessages(groupID string, limit int) ([]models.GroupMessage, error) {
	rows, err := s.db.Query(
		`SELECT gm.id, gm.group_id, gm.user_id, COALESCE(u.full_name, ''), gm.message, gm.created_at
		 FROM group_messages gm
		 LEFT JOIN users u ON u.user_id = gm.user_id
		 WHERE gm.group_id = $1
		 ORDER BY gm.created_at DESC
		 LIMIT $2`,
		groupID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	messages := []models.GroupMessage{}
	for rows.Next() {
		var m models.GroupMessage
		var id int64
		if err := rows.Scan(&id, &m.GroupID, &m.UserID, &m.UserName, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.MessageID = strconv.FormatInt(id, 10)
		messages = append(messages, m)
	}
	// reverse to chronological order
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, rows.Err()
}
