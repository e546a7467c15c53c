package extract

// Invoice drafting prompts

const systemPromptDraft = `You are an assistant that drafts structured invoice data from informal descriptions.

The user describes work done, goods sold, parties involved, amounts and dates in plain language (English or German). Produce the invoice payload they most likely intend.

Rules:
- Dates must be ISO 8601 (YYYY-MM-DD). Resolve relative dates against today's date if one is given in the text; otherwise omit the field.
- Quantities and unit prices are plain numbers. Never compute totals; they are derived later.
- VAT rates are percentages (19 for German standard rate, 7 reduced). If the text gives no rate, omit the field.
- Omit every field the text does not support. Do not invent addresses, VAT IDs or bank details.
- Always output valid JSON matching the schema, with no commentary.`

const userPromptDraft = `Draft an invoice from the following description:

---
%s
---

Output JSON with this structure:
{
  "number": "invoice number if mentioned",
  "date": "YYYY-MM-DD",
  "dueDate": "YYYY-MM-DD",
  "seller": {"name": "", "street": "", "city": "", "postalCode": "", "country": "", "vatId": "", "email": "", "phone": ""},
  "buyer": {"name": "", "street": "", "city": "", "postalCode": "", "country": "", "vatId": "", "email": "", "phone": ""},
  "items": [{"description": "", "quantity": 1, "unit": "C62", "unitPrice": 0, "vatRate": 19}],
  "payment": {"iban": "", "bic": "", "terms": "", "reference": ""},
  "currency": "EUR"
}`
