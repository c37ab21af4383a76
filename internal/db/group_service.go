package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nmthang/awaybot/internal/models"
)

// GroupService manages group registration and member roles.
type GroupService struct {
	db *gorm.DB

	// initialSuperadmin is always treated as superadmin everywhere,
	// mirroring the bootstrap operator configured outside the database.
	initialSuperadmin string
}

func NewGroupService(db *gorm.DB, initialSuperadmin string) *GroupService {
	return &GroupService{db: db, initialSuperadmin: initialSuperadmin}
}

// Register marks a group as registered and grants the registering user
// superadmin. Re-registering an existing group updates its name.
func (s *GroupService) Register(groupID, name, byUserID string) (*models.Group, error) {
	var group models.Group
	err := s.db.Where("group_id = ?", groupID).First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		group = models.Group{GroupID: groupID}
	} else if err != nil {
		return nil, fmt.Errorf("failed to look up group %s: %w", groupID, err)
	}

	group.Name = name
	group.Registered = true
	if group.ReportTarget == "" {
		group.ReportTarget = groupID
	}
	if err := s.db.Save(&group).Error; err != nil {
		return nil, fmt.Errorf("failed to register group %s: %w", groupID, err)
	}

	if byUserID != "" {
		if err := s.setRole(groupID, byUserID, models.RoleSuperAdmin); err != nil {
			return nil, err
		}
	}
	return &group, nil
}

// IsRegistered reports whether activities may be started in the group.
func (s *GroupService) IsRegistered(groupID string) (bool, error) {
	var group models.Group
	err := s.db.Where("group_id = ?", groupID).First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up group %s: %w", groupID, err)
	}
	return group.Registered, nil
}

// Get returns a group by its external id.
func (s *GroupService) Get(groupID string) (*models.Group, error) {
	var group models.Group
	err := s.db.Preload("Members").Where("group_id = ?", groupID).First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("group %s not registered", groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up group %s: %w", groupID, err)
	}
	return &group, nil
}

// SetReportTarget configures where the group's daily reports go.
func (s *GroupService) SetReportTarget(groupID, target string) error {
	res := s.db.Model(&models.Group{}).Where("group_id = ?", groupID).Update("report_target", target)
	if res.Error != nil {
		return fmt.Errorf("failed to set report target for %s: %w", groupID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("group %s not registered", groupID)
	}
	return nil
}

// RoleOf returns the user's role in the group.
func (s *GroupService) RoleOf(userID, groupID string) (models.Role, error) {
	if userID != "" && userID == s.initialSuperadmin {
		return models.RoleSuperAdmin, nil
	}
	var member models.GroupMember
	err := s.db.Where("group_ref = ? AND user_id = ?", groupID, userID).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.RoleNone, nil
	}
	if err != nil {
		return models.RoleNone, fmt.Errorf("failed to look up role for %s: %w", userID, err)
	}
	return member.Role, nil
}

// AddAdmin grants admin in the group.
func (s *GroupService) AddAdmin(groupID, userID string) error {
	role, err := s.RoleOf(userID, groupID)
	if err != nil {
		return err
	}
	if role.IsAdmin() {
		return fmt.Errorf("user %s is already an admin", userID)
	}
	return s.setRole(groupID, userID, models.RoleAdmin)
}

// AddSuperAdmin grants superadmin (which includes admin rights).
func (s *GroupService) AddSuperAdmin(groupID, userID string) error {
	role, err := s.RoleOf(userID, groupID)
	if err != nil {
		return err
	}
	if role == models.RoleSuperAdmin {
		return fmt.Errorf("user %s is already a superadmin", userID)
	}
	return s.setRole(groupID, userID, models.RoleSuperAdmin)
}

// RemoveAdmin revokes admin. Superadmins cannot be removed this way.
func (s *GroupService) RemoveAdmin(groupID, userID string) error {
	role, err := s.RoleOf(userID, groupID)
	if err != nil {
		return err
	}
	if role == models.RoleSuperAdmin {
		return fmt.Errorf("cannot remove a superadmin from the admin list")
	}
	if role != models.RoleAdmin {
		return fmt.Errorf("user %s is not an admin", userID)
	}
	return s.clearRole(groupID, userID)
}

// RemoveSuperAdmin revokes superadmin. The last superadmin of a group
// cannot be removed.
func (s *GroupService) RemoveSuperAdmin(groupID, userID string) error {
	role, err := s.RoleOf(userID, groupID)
	if err != nil {
		return err
	}
	if role != models.RoleSuperAdmin {
		return fmt.Errorf("user %s is not a superadmin", userID)
	}

	var count int64
	err = s.db.Model(&models.GroupMember{}).
		Where("group_ref = ? AND role = ?", groupID, models.RoleSuperAdmin).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to count superadmins for %s: %w", groupID, err)
	}
	if count <= 1 {
		return fmt.Errorf("cannot remove the last superadmin")
	}
	return s.clearRole(groupID, userID)
}

// Members lists the group's stored roles.
func (s *GroupService) Members(groupID string) ([]models.GroupMember, error) {
	var members []models.GroupMember
	err := s.db.Where("group_ref = ?", groupID).Order("user_id ASC").Find(&members).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list members of %s: %w", groupID, err)
	}
	return members, nil
}

// Groups lists every registered group.
func (s *GroupService) Groups() ([]models.Group, error) {
	var groups []models.Group
	err := s.db.Where("registered = ?", true).Order("group_id ASC").Find(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

func (s *GroupService) setRole(groupID, userID string, role models.Role) error {
	var member models.GroupMember
	err := s.db.Where("group_ref = ? AND user_id = ?", groupID, userID).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		member = models.GroupMember{GroupRef: groupID, UserID: userID}
	} else if err != nil {
		return fmt.Errorf("failed to look up member %s: %w", userID, err)
	}
	member.Role = role
	if err := s.db.Save(&member).Error; err != nil {
		return fmt.Errorf("failed to set role for %s: %w", userID, err)
	}
	return nil
}

func (s *GroupService) clearRole(groupID, userID string) error {
	err := s.db.Where("group_ref = ? AND user_id = ?", groupID, userID).
		Delete(&models.GroupMember{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear role for %s: %w", userID, err)
	}
	return nil
}
