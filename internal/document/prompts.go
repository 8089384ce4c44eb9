package document

const chequePrompt = `You are an expert at reading Indian bank cheques. Analyze this cheque image and extract:

**MANDATORY FIELDS:**
1. **Bank Name**: Name of the bank (e.g., "State Bank of India", "HDFC Bank")
2. **Account Holder Name**: Name printed on the cheque, usually above the signature area. This is the ACCOUNT OWNER, NOT the payee
3. **Payee Name**: Name after "PAY" (the person or entity receiving the payment)
4. **Amount in Words**: Written amount after "RUPEES" (e.g., "Fifty Lakh Only")
5. **Amount in Numbers**: Numeric amount in the box (e.g., "5000000" or "50,00,000")
6. **Date**: Date from the top-right boxes (DD/MM/YYYY format)
7. **Account Number**: 11-16 digit account number (usually near "A/c No.")
8. **IFSC Code**: 11-character code (format: SBIN0001234)
9. **MICR Code**: Bottom code line with symbols. EXTRACT EXACTLY AS PRINTED WITH ALL SYMBOLS
   Example: "⑈343242⑈ 520002206⑆ 000860⑈ 24" or "230270• 143002341: 004052 31"

**OPTIONAL FIELDS:**
10. **PREFIX Number**: PREFIX account identifier if visible
11. **Branch Name**: Branch name if mentioned
12. **Branch Code**: Branch code if mentioned

**CRITICAL INSTRUCTIONS:**
- Account Holder Name is the name printed on the cheque, not the payee name
- Extract the MICR code exactly as printed, keeping the symbols (⑈, ⑆, •, :) and spacing
- For the amount in numbers, extract the raw number without currency symbols
- Dates must be in DD/MM/YYYY format
- Use an empty string "" for anything that is not visible

Return ONLY valid JSON (no markdown, no explanations):
{
  "bank_name": "",
  "account_holder_name": "",
  "payee_name": "",
  "amount_words": "",
  "amount_numbers": "",
  "date": "",
  "account_number": "",
  "ifsc_code": "",
  "micr_code": "",
  "prefix_number": "",
  "branch_name": "",
  "branch_code": ""
}`

const gstPrompt = `You are an expert at reading GST Registration Certificates (Form GST REG-06) from India. Analyze this certificate image and extract ALL fields accurately.

**MANDATORY FIELDS:**
1. **Registration Number (GSTIN)**: 15-character alphanumeric code
2. **Legal Name**: The legal registered business name
3. **Trade Name**: Trade name if mentioned
4. **Constitution of Business**: e.g. "Proprietorship", "Limited Liability Partnership"
5. **Address of Principal Place of Business**:
   - Floor Number
   - Building/Flat Number
   - Name of Premises/Building
   - Road/Street
   - Locality/Sub Locality
   - City/Town/Village
   - District
   - State
   - PIN Code (6 digits)
6. **Period of Validity**:
   - Valid From (DD/MM/YYYY format)
   - Valid To (may be "Not Applicable")
7. **Type of Registration**: e.g. "Regular", "Composition"
8. **Approving Authority**:
   - Name of the Approving Officer
   - Designation
   - Jurisdictional Office
9. **Date of Issue of Certificate** (DD/MM/YYYY)

Use an empty string "" for anything that is not present.

Return ONLY valid JSON (no markdown):
{
  "registration_number": "",
  "legal_name": "",
  "trade_name": "",
  "constitution": "",
  "floor_number": "",
  "building_number": "",
  "premises_name": "",
  "road_street": "",
  "locality": "",
  "city": "",
  "district": "",
  "state": "",
  "pin_code": "",
  "validity_from": "",
  "validity_to": "",
  "registration_type": "",
  "approving_officer": "",
  "designation": "",
  "office": "",
  "issue_date": ""
}`

const passbookPrompt = `You are an expert at reading Indian bank passbook cover pages. Analyze this passbook FIRST PAGE / COVER PAGE image and extract ONLY the account holder information.

**IMPORTANT:** Extract ONLY account holder details. DO NOT extract transaction data.

**FIELDS TO EXTRACT FROM THE COVER PAGE:**
1. **CIF Number**: Customer Information File number
2. **Account Number**: Full bank account number
3. **Customer Name**: Account holder's full name
4. **Father's/Husband's Name**: S/O, W/O, D/O details
5. **Address**: Complete address
6. **Phone**: Contact number
7. **Email**: Email address if visible
8. **Date of Birth (D.O.B.)**: DD/MM/YYYY format
9. **Minor Status (MOP)**: SINGLE/MINOR status
10. **Nominee Registration Number**: If visible
11. **Branch Details:**
    - Branch Name
    - Branch Code
    - IFSC Code
    - MICR Code
12. **Account Type**: Savings/Current
13. **Date of Issue**: When the passbook was issued (DD/MM/YYYY)
14. **Date of Activation**: Account opening date if visible (DD/MM/YYYY)

**INSTRUCTIONS:**
- Extract EXACTLY as printed on the passbook
- If any field is not visible or not applicable, use an empty string ""
- DO NOT extract transaction data
- DO NOT describe the photo or signature

Return ONLY valid JSON (no markdown, no explanations):
{
  "cif_number": "",
  "account_number": "",
  "customer_name": "",
  "father_husband_name": "",
  "address": "",
  "phone": "",
  "email": "",
  "date_of_birth": "",
  "minor_status": "",
  "nominee_reg_number": "",
  "branch_name": "",
  "branch_code": "",
  "ifsc_code": "",
  "micr_code": "",
  "account_type": "",
  "date_of_issue": "",
  "date_of_activation": ""
}`
