package types

const (
	// MaxFee bounds both the mint fee and the burn commission.
	MaxFee = uint64(100000)
	// MaxRoleMembers is the capacity of each multi-member role list.
	MaxRoleMembers = 10
	// LBTCDecimals is the decimal precision of the wrapped asset.
	LBTCDecimals = 8
)

// ProgramConfig is the singleton state of the LBTC program. It is loaded,
// mutated and written back within a single store transaction.
type ProgramConfig struct {
	ProgramID Address
	ChainID   Hash

	Admin        Address
	PendingAdmin Address
	Operator     Address
	Treasury     Address
	Pausers      []Address
	Claimers     []Address
	Minters      []Address

	BurnCommission uint64
	DustFeeRate    uint64
	MintFee        uint64

	Paused             bool
	WithdrawalsEnabled bool
	BasculeEnabled     bool

	UnstakeCounter uint64

	ValidatorSet ValidatorSet
}

// InitParams are the values fixed by the deployer when the program is
// initialized.
type InitParams struct {
	Admin          Address
	Operator       Address
	Treasury       Address
	BurnCommission uint64
	DustFeeRate    uint64
	MintFee        uint64
}

// Role is a capability tag checked against the caller at each entry point.
type Role uint8

const (
	RoleAdmin Role = iota
	RolePendingAdmin
	RoleOperator
	RolePauser
	RoleClaimer
	RoleMinter
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RolePendingAdmin:
		return "pending-admin"
	case RoleOperator:
		return "operator"
	case RolePauser:
		return "pauser"
	case RoleClaimer:
		return "claimer"
	case RoleMinter:
		return "minter"
	default:
		return "unknown"
	}
}

// HasRole reports whether caller holds role.
func (c *ProgramConfig) HasRole(role Role, caller Address) bool {
	switch role {
	case RoleAdmin:
		return !c.Admin.IsZero() && c.Admin == caller
	case RolePendingAdmin:
		return !c.PendingAdmin.IsZero() && c.PendingAdmin == caller
	case RoleOperator:
		return !c.Operator.IsZero() && c.Operator == caller
	case RolePauser:
		return containsAddress(c.Pausers, caller)
	case RoleClaimer:
		return containsAddress(c.Claimers, caller)
	case RoleMinter:
		return containsAddress(c.Minters, caller)
	default:
		return false
	}
}

// RequireRole fails with the authorization error matching role unless caller
// holds it.
func (c *ProgramConfig) RequireRole(role Role, caller Address) error {
	if c.HasRole(role, caller) {
		return nil
	}

	switch role {
	case RoleAdmin:
		return ErrNotAdmin
	case RolePendingAdmin:
		return ErrNotPendingAdm
	case RoleOperator:
		return ErrNotOperator
	case RolePauser:
		return ErrNotPauser
	case RoleClaimer:
		return ErrNotClaimer
	case RoleMinter:
		return ErrNotMinter
	default:
		return ErrUnauthorized
	}
}

// RequireNotPaused fails with ErrPaused while the program is paused.
func (c *ProgramConfig) RequireNotPaused() error {
	if c.Paused {
		return ErrPaused
	}
	return nil
}

// AddMember adds addr to the list backing role.
func (c *ProgramConfig) AddMember(role Role, addr Address) error {
	if addr.IsZero() {
		return ErrZeroAddress
	}

	list, limitErr := c.memberList(role)
	if list == nil {
		return ErrUnauthorized
	}
	if containsAddress(*list, addr) {
		return ErrAlreadyExists
	}
	if len(*list) >= MaxRoleMembers {
		return limitErr
	}
	*list = append(*list, addr)
	return nil
}

// RemoveMember removes addr from the list backing role.
func (c *ProgramConfig) RemoveMember(role Role, addr Address) error {
	list, _ := c.memberList(role)
	if list == nil {
		return ErrUnauthorized
	}
	for i, a := range *list {
		if a == addr {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (c *ProgramConfig) memberList(role Role) (*[]Address, error) {
	switch role {
	case RolePauser:
		return &c.Pausers, ErrMaxPausers
	case RoleClaimer:
		return &c.Claimers, ErrMaxClaimers
	case RoleMinter:
		return &c.Minters, ErrMaxMinters
	default:
		return nil, nil
	}
}

func containsAddress(list []Address, addr Address) bool {
	if addr.IsZero() {
		return false
	}
	for _, a := range list {
		if a == addr {
			return true
		}
	}
	return false
}
