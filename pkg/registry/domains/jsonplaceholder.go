package domains

import "github.com/aretw0/mcpgate/pkg/domain"

// DefaultJSONPlaceholderURL is the public JSONPlaceholder fake REST API.
const DefaultJSONPlaceholderURL = "https://jsonplaceholder.typicode.com"

// JSONPlaceholder returns the posts, comments and users operations.
func JSONPlaceholder(baseURL string) []domain.OperationDescriptor {
	return []domain.OperationDescriptor{
		{
			Name:        "get_posts",
			Description: "Get all posts. Optionally filter by userId.",
			BaseURL:     baseURL,
			Template:    "/posts",
			Verb:        domain.VerbGet,
			Optional:    []string{"userId"},
		},
		{
			Name:        "get_post",
			Description: "Get a specific post by ID.",
			BaseURL:     baseURL,
			Template:    "/posts/{id}",
			Verb:        domain.VerbGet,
			Required:    []string{"id"},
		},
		{
			Name:        "create_post",
			Description: "Create a new post with title, body, and userId.",
			BaseURL:     baseURL,
			Template:    "/posts",
			Verb:        domain.VerbPost,
			Required:    []string{"title", "body", "userId"},
		},
		{
			Name:        "update_post",
			Description: "Update an existing post.",
			BaseURL:     baseURL,
			Template:    "/posts/{id}",
			Verb:        domain.VerbPut,
			Required:    []string{"id", "title", "body", "userId"},
			Sensitive:   true,
		},
		{
			Name:        "delete_post",
			Description: "Delete a post by ID.",
			BaseURL:     baseURL,
			Template:    "/posts/{id}",
			Verb:        domain.VerbDelete,
			Required:    []string{"id"},
			Sensitive:   true,
		},
		{
			Name:        "get_comments",
			Description: "Get all comments for a specific post.",
			BaseURL:     baseURL,
			Template:    "/posts/{postId}/comments",
			Verb:        domain.VerbGet,
			Required:    []string{"postId"},
		},
		{
			Name:        "get_users",
			Description: "Get all users.",
			BaseURL:     baseURL,
			Template:    "/users",
			Verb:        domain.VerbGet,
		},
		{
			Name:        "get_user",
			Description: "Get a specific user by ID.",
			BaseURL:     baseURL,
			Template:    "/users/{id}",
			Verb:        domain.VerbGet,
			Required:    []string{"id"},
		},
	}
}
