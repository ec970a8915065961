package auctionhouse

import (
	"bytes"
	"strings"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/lincot/solana-marketplace/pda"
	"github.com/pkg/errors"
)

var ProgramID = pda.AuctionHouseProgramID

func SetProgramID(pubkey solana.PublicKey) {
	ProgramID = pubkey
}

var (
	Instruction_CreateAuctionHouse   = sighash("create_auction_house")
	Instruction_Sell                 = sighash("sell")
	Instruction_Buy                  = sighash("buy")
	Instruction_Deposit              = sighash("deposit")
	Instruction_ExecuteSale          = sighash("execute_sale")
	Instruction_WithdrawFromTreasury = sighash("withdraw_from_treasury")
)

var ErrMissingAccounts = errors.New("missing accounts")

func sighash(name string) bin.TypeID {
	return bin.SighashTypeID(bin.SIGHASH_GLOBAL_NAMESPACE, name)
}

// Instruction is an encoded auction house instruction ready for a transaction.
type Instruction struct {
	programID solana.PublicKey
	typeID    bin.TypeID
	args      interface{}
	accounts  solana.AccountMetaSlice
}

func (inst *Instruction) ProgramID() solana.PublicKey {
	return inst.programID
}

func (inst *Instruction) Accounts() []*solana.AccountMeta {
	return inst.accounts
}

func (inst *Instruction) Data() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(inst.typeID[:])
	if err := bin.NewBorshEncoder(buf).Encode(inst.args); err != nil {
		return nil, errors.Wrap(err, "failed to encode instruction args")
	}
	return buf.Bytes(), nil
}

func (inst *Instruction) TypeID() bin.TypeID {
	return inst.typeID
}

// WithProgramID points the instruction at another deployment of the program.
func (inst *Instruction) WithProgramID(programID solana.PublicKey) *Instruction {
	inst.programID = programID
	return inst
}

type accountSlot struct {
	name     string
	writable bool
	signer   bool
}

// accountList holds the fixed account layout of one instruction followed by
// any remaining accounts.
type accountList struct {
	slots     []accountSlot
	metas     []*solana.AccountMeta
	remaining []*solana.AccountMeta
}

func newAccountList(slots []accountSlot) accountList {
	return accountList{slots: slots, metas: make([]*solana.AccountMeta, len(slots))}
}

func (l *accountList) set(idx int, pubkey solana.PublicKey) {
	slot := l.slots[idx]
	l.metas[idx] = solana.NewAccountMeta(pubkey, slot.writable, slot.signer)
}

func (l *accountList) get(idx int) *solana.AccountMeta {
	return l.metas[idx]
}

func (l *accountList) validate() error {
	var missing []string
	for i, meta := range l.metas {
		if meta == nil {
			missing = append(missing, l.slots[i].name)
		}
	}
	if len(missing) > 0 {
		return errors.Wrap(ErrMissingAccounts, strings.Join(missing, ", "))
	}
	return nil
}

func (l *accountList) all() solana.AccountMetaSlice {
	out := make(solana.AccountMetaSlice, 0, len(l.metas)+len(l.remaining))
	for _, meta := range l.metas {
		if meta != nil {
			out = append(out, meta)
		}
	}
	return append(out, l.remaining...)
}

func build(typeID bin.TypeID, args interface{}, accounts *accountList) *Instruction {
	return &Instruction{
		programID: ProgramID,
		typeID:    typeID,
		args:      args,
		accounts:  accounts.all(),
	}
}

func validateAndBuild(typeID bin.TypeID, args interface{}, accounts *accountList) (*Instruction, error) {
	if err := accounts.validate(); err != nil {
		return nil, err
	}
	return build(typeID, args, accounts), nil
}
