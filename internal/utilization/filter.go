package utilization

import "github.com/alexanderramin/allot/internal/domain"

// AllResources is the filter value that selects every resource.
const AllResources = "all"

// FilterAssignments returns the assignments belonging to resourceID.
// AllResources (or "") returns the input unchanged.
func FilterAssignments(assignments []*domain.ResourceAssignment, resourceID string) []*domain.ResourceAssignment {
	if isAll(resourceID) {
		return assignments
	}
	var filtered []*domain.ResourceAssignment
	for _, a := range assignments {
		if a.ResourceID == resourceID {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

// FilterResources narrows the resource list the same way FilterAssignments
// narrows assignments.
func FilterResources(resources []*domain.Resource, resourceID string) []*domain.Resource {
	if isAll(resourceID) {
		return resources
	}
	var filtered []*domain.Resource
	for _, r := range resources {
		if r.ID == resourceID {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func isAll(resourceID string) bool {
	return resourceID == "" || resourceID == AllResources
}
