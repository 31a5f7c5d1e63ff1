package session

// Role is the closed set of account roles. Fixed at registration.
type Role string

const (
	RoleCustomer        Role = "Customer"
	RoleRestaurantOwner Role = "Restaurant Owner"
	RoleDeliveryCrew    Role = "Delivery Crew"
)

type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
}

type RegisterParams struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RePassword string `json:"re_password"`
	Email      string `json:"email"`
}

type UpdateProfileParams struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}
