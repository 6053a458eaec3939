package workspace

import "github.com/saltpay/stencil/internal/model"

// Sample returns a small workspace used by "stencil init".
func Sample(teamName, userID string) *Workspace {
	return &Workspace{
		Team: model.Team{ID: "team", Name: teamName, Color: "#4E5C6E"},
		User: model.User{ID: userID, Role: model.RoleMember},
		Collections: []model.Collection{
			{ID: "engineering", Name: "Engineering", Icon: "◆", Color: "#FF5C80", Index: 0, Permission: model.PermissionReadWrite},
			{ID: "product", Name: "Product", Icon: "●", Color: "#2F80ED", Index: 1, Permission: model.PermissionReadWrite},
			{ID: "handbook", Name: "Handbook", Icon: "■", Color: "#00B894", Index: 2, Permission: model.PermissionRead},
		},
	}
}
