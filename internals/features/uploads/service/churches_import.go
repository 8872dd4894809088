package service

import (
	"fmt"

	"gorm.io/gorm"

	churchModel "reporthub_backend/internals/features/organization/churches/model"
	groupModel "reporthub_backend/internals/features/organization/groups/model"
	helper "reporthub_backend/internals/helpers"
)

type churchColumns struct {
	church, group, zone int
}

// importChurches handles: Church Name, Group Name, Zone?
func (imp *importer) importChurches(t *Table) ([]RowResult, error) {
	cols := churchColumns{
		church: t.Col("church name", "church", "name"),
		group:  t.Col("group name", "group"),
		zone:   t.Col("zone name", "zone"),
	}
	if err := missingColumns(map[string]int{
		"Church Name": cols.church,
		"Group Name":  cols.group,
	}); err != nil {
		return nil, err
	}

	results := make([]RowResult, 0, len(t.Rows))
	for _, row := range t.Rows {
		results = append(results, imp.churchRow(row, cols))
	}
	return results, nil
}

func (imp *importer) churchRow(row Row, cols churchColumns) RowResult {
	name := helper.CleanName(row.Get(cols.church))
	if name == "" {
		return failf(row.Num, "Church Name is required")
	}
	groupName := helper.CleanName(row.Get(cols.group))
	if groupName == "" {
		return failf(row.Num, "Group Name is required")
	}

	group, err := imp.findGroup(groupName, helper.CleanName(row.Get(cols.zone)))
	if err != nil {
		return fail(row.Num, err)
	}
	if imp.opts.Scope.Restricted() && !imp.opts.Scope.Allows(group.GroupZoneID) {
		return failf(row.Num, "group %q is outside your zone", groupName)
	}

	taken, err := helper.NameTakenCI(imp.ctx, imp.db, "churches", "church_name", "church_deleted_at", name, nil)
	if err != nil {
		return fail(row.Num, err)
	}
	if taken {
		return failf(row.Num, "church %q already exists", name)
	}

	church := churchModel.ChurchModel{ChurchGroupID: group.GroupID, ChurchName: name}
	res := imp.saveRow(row, func(tx *gorm.DB) error {
		return tx.Omit("Group").Create(&church).Error
	})
	if res.Err == nil {
		imp.churches[cacheKey(name)] = &churchRef{ID: church.ChurchID, Name: name, ZoneID: group.GroupZoneID}
	}
	return res
}

// findGroup matches by name; group names are only unique per zone, so a zone
// column (or the zone admin's own zone) disambiguates.
func (imp *importer) findGroup(name, zoneName string) (*groupModel.GroupModel, error) {
	q := imp.db.Model(&groupModel.GroupModel{}).
		Where(`LOWER("groups".group_name) = LOWER(?)`, name)
	if zoneName != "" {
		q = q.Joins(`JOIN zones z ON z.zone_id = "groups".group_zone_id`).
			Where("LOWER(z.zone_name) = LOWER(?)", zoneName)
	}
	if imp.opts.Scope.Restricted() {
		q = q.Where(`"groups".group_zone_id = ?`, *imp.opts.Scope.ZoneID)
	}

	var groups []groupModel.GroupModel
	if err := q.Limit(2).Find(&groups).Error; err != nil {
		return nil, err
	}
	switch len(groups) {
	case 0:
		if imp.opts.Scope.Restricted() {
			return nil, fmt.Errorf("group %q not found in your zone", name)
		}
		return nil, fmt.Errorf("group %q not found", name)
	case 1:
		return &groups[0], nil
	default:
		return nil, fmt.Errorf("group %q exists in more than one zone, add a Zone column", name)
	}
}

