package domain

type (
	User struct {
		ID        string
		Email     string
		FirstName string
		LastName  string
		Phone     string
		Role      string
		Avatar    string
	}

	// Credentials are the token pair issued by the auth backend.
	Credentials struct {
		AccessToken  string
		RefreshToken string
	}

	// A Session is what a successful login returns.
	Session struct {
		User        User
		Credentials Credentials
	}

	RegisterForm struct {
		FirstName string
		LastName  string
		Email     string
		Password  string
		Phone     string
	}
)
